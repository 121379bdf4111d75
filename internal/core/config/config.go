package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultBackendURL = "http://localhost:8000"
	DefaultTopK       = 5

	// Ingest downloads and transcribes the whole video before responding,
	// so the client-side timeout has to be generous.
	DefaultTimeout = 10 * time.Minute
)

type Config struct {
	BackendURL string
	TopK       int
	Timeout    time.Duration
	LogFile    string
	LogLevel   string
}

type tomlConfig struct {
	BackendURL            string `toml:"backend_url"`
	TopK                  int    `toml:"top_k"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
	LogFile               string `toml:"log_file"`
	LogLevel              string `toml:"log_level"`
}

// Load reads config from ~/.config/vidchat/config.toml. Missing file or
// home directory just means defaults. VIDCHAT_BACKEND_URL overrides the
// backend URL from either source.
func Load() (*Config, error) {
	cfg := &Config{
		BackendURL: DefaultBackendURL,
		TopK:       DefaultTopK,
		Timeout:    DefaultTimeout,
	}

	home, err := os.UserHomeDir()
	if err != nil {
		applyEnv(cfg)
		return cfg, nil // Use defaults
	}

	tomlPath := filepath.Join(home, ".config", "vidchat", "config.toml")
	if _, err := os.Stat(tomlPath); err == nil {
		var tc tomlConfig
		if _, err := toml.DecodeFile(tomlPath, &tc); err == nil {
			if tc.BackendURL != "" {
				cfg.BackendURL = tc.BackendURL
			}
			if tc.TopK > 0 {
				cfg.TopK = tc.TopK
			}
			if tc.RequestTimeoutSeconds > 0 {
				cfg.Timeout = time.Duration(tc.RequestTimeoutSeconds) * time.Second
			}
			cfg.LogFile = tc.LogFile
			cfg.LogLevel = tc.LogLevel
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if url := os.Getenv("VIDCHAT_BACKEND_URL"); url != "" {
		cfg.BackendURL = url
	}
}
