package extsort

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger for the sorter's own phase-boundary log lines.
// This keeps the core package's logging surface tiny while still giving
// callers structured output, the way vecgo's Logger wraps slog for its own
// engine events.
type Logger struct {
	*slog.Logger
}

// NewTextLogger creates a Logger that writes human-readable text to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return &Logger{slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))}
}

// NewJSONLogger creates a Logger that writes JSON-formatted records to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return &Logger{slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))}
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return &Logger{slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.Level(1000)}))}
}
