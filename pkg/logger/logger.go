package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns a logger writing to w. LOG_LEVEL overrides level; format is "json" or "text".
func New(level, format string, w io.Writer) *slog.Logger {
	lvl := slog.LevelInfo
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		level = env
	}
	if level != "" {
		var parsed slog.Level
		if err := parsed.UnmarshalText([]byte(level)); err == nil {
			lvl = parsed
		}
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Default returns the info-level text logger on stderr; stdout belongs to the console.
func Default() *slog.Logger {
	return New("", "text", os.Stderr)
}
