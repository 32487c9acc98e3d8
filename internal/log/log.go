// Package log builds the structured file logger shared by the browser and
// the scripted commands.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mmcdole/vitrine/internal/config"
)

// Component names attached to loggers handed to each layer
const (
	ComponentClient    = "artic"
	ComponentLoader    = "loader"
	ComponentSelection = "selection"
	ComponentTUI       = "tui"
)

// SetupLogger opens the configured log file and returns a JSON logger on it.
// The browser owns the terminal, so nothing is ever written to stdout/stderr.
func SetupLogger(cfg *config.LoggingConfig) (*slog.Logger, error) {
	logPath := cfg.Path()
	if logPath == "" {
		return nil, fmt.Errorf("logging.file is empty")
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return NewLogger(logFile, cfg.Level), nil
}

// NewLogger builds a JSON logger on w tagged with a per-process session id.
// Several runs (the browser, `vitrine select` from a script) may append to the
// same file; the session id tells their page loads and selection events apart.
func NewLogger(w io.Writer, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	return slog.New(handler).With("session", uuid.NewString())
}

// For tags logger with the layer it is handed to
func For(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With("component", component)
}

// ParseLevel converts logging.level (or --log-level) to a slog.Level.
// Unknown values fall back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NullLogger returns a logger that discards all output
func NullLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
