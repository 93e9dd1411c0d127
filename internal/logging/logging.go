// Package logging sets up the process-wide slog.Logger, the same text
// handler the teacher's cmd/ entrypoints install before doing anything else.
package logging

import (
	"log/slog"
	"os"
)

// Setup installs a text-handler logger at the given level as the slog
// default and returns it. Call once, at the top of main().
func Setup(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// ParseLevel maps a lowercase level name ("debug", "info", "warn", "error")
// to a slog.Level, defaulting to Info for anything unrecognized.
func ParseLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
