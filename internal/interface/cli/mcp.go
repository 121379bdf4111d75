package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"vidchat/cmd/vidchat/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "serve-mcp",
	Short: "Start MCP server exposing the video chat backend",
	Long: `Start an MCP (Model Context Protocol) server over stdio that lets an
agent list, ingest and query videos through the same backend.

Configure in your MCP client, e.g.:
  {
    "mcpServers": {
      "vidchat": {
        "command": "vidchat",
        "args": ["serve-mcp"]
      }
    }
  }
`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := mcp.StartServer(newClient(cfg)); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}
