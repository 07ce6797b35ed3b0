// Package logging builds the slog handlers used by the command line tools.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelFor maps a level name onto an slog level. Client verbosities (silent through verbose)
// all log at info and map to it; debug and trace open the handler further.
func LevelFor(verbosity string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(verbosity)) {
	case "debug", "trace":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewHandler builds a text or JSON handler writing to w at the given level.
func NewHandler(w io.Writer, level slog.Level, json bool) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	if json {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// Setup installs a default logger for the given verbosity and returns it.
func Setup(verbosity string, json bool) *slog.Logger {
	// send everything to stderr so stdout only carries call results
	logger := slog.New(NewHandler(os.Stderr, LevelFor(verbosity), json))
	slog.SetDefault(logger)

	return logger
}
