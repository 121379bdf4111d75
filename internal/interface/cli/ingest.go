package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var ingestTitle string

var ingestCmd = &cobra.Command{
	Use:   "ingest <url>",
	Short: "Ingest a video",
	Long: `Submit a video URL for download, transcription and indexing.

The backend processes the video synchronously, so this can take several
minutes for long videos.

Examples:
  vidchat ingest https://youtube.com/watch?v=abc123
  vidchat ingest --title "Soup tutorial" https://youtube.com/watch?v=abc123`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().StringVar(&ingestTitle, "title", "", "Title for the video (defaults to the backend's description)")
}

func runIngest(cmd *cobra.Command, args []string) error {
	url := strings.TrimSpace(args[0])
	if url == "" {
		return fmt.Errorf("url must not be empty")
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client := newClient(cfg)
	fmt.Printf("Ingesting %s (this can take a while)...\n", url)

	result, err := client.Ingest(context.Background(), url, ingestTitle)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	fmt.Printf("Ingested: %s\n", result.VideoURL)
	if result.Description != "" {
		fmt.Printf("Description: %s\n", result.Description)
	}
	fmt.Printf("\nAsk away: vidchat ask %s \"What is this about?\"\n", result.VideoURL)
	return nil
}
