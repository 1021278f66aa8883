package logging

import (
	"io"
	"log/slog"
	"os"
)

// Config holds logger configuration.
type Config struct {
	Level      slog.Level
	JSONFormat bool // JSON for services, text for interactive use
	AddSource  bool
	Output     io.Writer // defaults to stderr
}

// Setup installs the process-wide slog default so every package's
// slog.Default().With("component", ...) picks up the same handler.
func Setup(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.JSONFormat {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// DebugConfig returns a configuration for verbose interactive runs.
func DebugConfig() Config {
	return Config{Level: slog.LevelDebug, AddSource: true}
}

// DefaultConfig returns the standard CLI configuration.
func DefaultConfig() Config {
	return Config{Level: slog.LevelInfo}
}
