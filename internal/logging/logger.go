// Package logging builds the log/slog logger used by the recfmt command.
//
// Level values: "debug", "info", "warn", "error".
// Format values: "text", "json".
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ErrInvalidOption is returned for an unknown level or format.
var ErrInvalidOption = errors.New("invalid logging option")

// New returns a logger writing to w.
func New(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "text", "":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("%w: log format %q: must be 'text' or 'json'", ErrInvalidOption, format)
	}
	return slog.New(handler), nil
}

// ParseLevel converts a level name to slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: log level %q: must be 'debug', 'info', 'warn', or 'error'", ErrInvalidOption, level)
	}
}
