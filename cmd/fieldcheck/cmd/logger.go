package cmd

import (
	"fmt"
	"io"
	"log/slog"
)

// Log output formats accepted by --log-format.
const (
	logFormatText = "text"
	logFormatJSON = "json"
)

// newLogger builds the CLI logger. Debug records are only emitted when
// verbose is set.
func newLogger(w io.Writer, format string, verbose bool) (*slog.Logger, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	switch format {
	case logFormatText, "":
		return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
	case logFormatJSON:
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q: must be %q or %q", format, logFormatText, logFormatJSON)
	}
}
