package app

import (
	"io"
	"log/slog"
	"strings"
)

// newLogger builds an isolated logger for one export run. Unknown levels fall
// back to info; any format other than "json" is text.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if strings.EqualFold(levelStr, "warning") {
		levelStr = "warn"
	}
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(formatStr, "json") {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}
