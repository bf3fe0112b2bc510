// Package logger builds the slog logger shared by the CLI and the server.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// DefaultLogFile is used when Output is "file".
const DefaultLogFile = "approval-gate.log"

// Config holds the logger configuration.
type Config struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// OpenOutput resolves cfg.Output to a writer. The returned cleanup closes the
// log file when one was opened.
func OpenOutput(cfg Config) (io.Writer, func(), error) {
	switch cfg.Output {
	case "", "stdout":
		return os.Stdout, func() {}, nil
	case "stderr":
		return os.Stderr, func() {}, nil
	case "file":
		file, err := os.OpenFile(DefaultLogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return file, func() { _ = file.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported log output %q", cfg.Output)
	}
}

// NewLogger initializes a slog logger writing to output. Unknown levels fall
// back to info.
func NewLogger(cfg Config, output io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			level = slog.LevelInfo
		}
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}
	return slog.New(handler).With("app", "approval-gate")
}
