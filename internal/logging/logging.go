// Package logging wires the process-wide slog logger from configuration.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Options controls handler construction.
type Options struct {
	Level   string // debug, info, warn, error.
	Format  string // text or json.
	Verbose bool   // Forces debug level.
	Quiet   bool   // Forces error level.
}

// Setup builds a logger writing to w and installs it as slog default.
func Setup(w io.Writer, opts Options) *slog.Logger {
	level := parseLevel(opts.Level)

	if opts.Verbose {
		level = slog.LevelDebug
	}

	if opts.Quiet {
		level = slog.LevelError
	}

	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
