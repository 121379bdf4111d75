package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"vidchat/internal/core/logging"
	"vidchat/internal/core/store"
	"vidchat/internal/interface/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Launch the interactive chat TUI",
	Long:  "Launch the terminal UI: pick a video, ask questions, ingest new ones.",
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, closer := logging.Setup(cfg.LogFile, cfg.LogLevel)
	if closer != nil {
		defer func() {
			_ = closer.Close()
		}()
	}

	model := tui.New(newClient(cfg), store.New(), logger)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
	return nil
}
