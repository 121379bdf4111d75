// Package logging sets up file-based logging. The TUI owns the terminal,
// so log output always goes to a file; when no log file is configured the
// logger writes nothing.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Setup returns a logger writing to path at the given level. An empty
// path yields a discard logger. The returned closer is nil when there is
// nothing to close.
func Setup(path, level string) (*log.Logger, io.Closer) {
	if path == "" {
		return log.New(io.Discard), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return log.New(io.Discard), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return log.New(io.Discard), nil
	}

	logger := log.New(f)
	logger.SetReportTimestamp(true)
	logger.SetLevel(parseLevel(level))
	return logger, f
}

func parseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
