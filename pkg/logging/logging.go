package logging

import (
	"log/slog"
	"os"
	"strings"
)

// New creates a slog.Logger using the provided level and format strings.
// Output goes to stderr so it never interferes with the stdio transport.
func New(level, format string) *slog.Logger {
	l := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: l}

	var handler slog.Handler
	if strings.ToLower(format) == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
