package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <video-id> <question>",
	Short: "Ask one question about a video",
	Long: `Ask a single question about an ingested video and print the answer.

The video id is the identifier shown by 'vidchat videos'.

Examples:
  vidchat ask abc123 "What is this video about?"
  vidchat ask abc123 What happens at the end`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	videoID := args[0]
	question := strings.TrimSpace(strings.Join(args[1:], " "))
	if question == "" {
		return fmt.Errorf("question must not be empty")
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client := newShortClient(cfg)
	answer, err := client.Query(context.Background(), videoID, question)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	fmt.Println(answer)
	return nil
}
