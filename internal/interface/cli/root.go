package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"vidchat/internal/core/backend"
	"vidchat/internal/core/config"
)

var (
	backendURL  string
	versionInfo string
)

// SetVersion sets the version information from build-time ldflags
func SetVersion(version, commit, date string) {
	versionInfo = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	rootCmd.Version = versionInfo
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vidchat",
	Short: "Chat with your videos",
	Long: `vidchat - ingest videos and chat about their content

A terminal client for a video question-answering backend. The backend
downloads, transcribes and indexes videos; vidchat keeps one chat
session per video and answers questions from the transcript.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default to the chat TUI if no subcommand specified
		return chatCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", "", "Backend base URL (overrides config)")
}

// loadConfig resolves config with the --backend flag applied on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if backendURL != "" {
		cfg.BackendURL = backendURL
	}
	return cfg, nil
}

// newClient builds a backend client from resolved config.
func newClient(cfg *config.Config) *backend.Client {
	return backend.New(cfg.BackendURL, cfg.TopK, cfg.Timeout)
}

// newShortClient is for one-shot commands that should not hang for the
// full ingest-scale timeout.
func newShortClient(cfg *config.Config) *backend.Client {
	timeout := cfg.Timeout
	if timeout > 2*time.Minute {
		timeout = 2 * time.Minute
	}
	return backend.New(cfg.BackendURL, cfg.TopK, timeout)
}
