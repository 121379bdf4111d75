package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var videosCmd = &cobra.Command{
	Use:   "videos",
	Short: "List ingested videos",
	Long: `List the videos the backend already knows about.

Each entry shows the video identifier and its description. These are the
sessions the chat TUI starts with.

Examples:
  vidchat videos
  vidchat videos --backend http://backend:8000`,
	RunE: runVideos,
}

func init() {
	rootCmd.AddCommand(videosCmd)
}

func runVideos(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client := newShortClient(cfg)
	videos, err := client.ListVideos(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list videos: %w", err)
	}

	if len(videos) == 0 {
		fmt.Println("No videos ingested yet. Run 'vidchat ingest <url>' to add one.")
		return nil
	}

	fmt.Printf("Showing %d video(s)\n\n", len(videos))
	for i, v := range videos {
		fmt.Printf("[%d] %s\n", i+1, v.URL)
		if v.Description != "" {
			fmt.Printf("    %s\n", v.Description)
		}
		fmt.Println()
	}
	return nil
}
