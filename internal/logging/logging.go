// Package logging builds the server's slog logger. Output always goes to
// stderr: stdout carries the MCP stdio transport.
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Setup installs a stderr logger at level as the slog default and returns
// the level so callers can adjust it later.
func Setup(level slog.Level) *slog.LevelVar {
	ll := &slog.LevelVar{}
	ll.Set(level)
	// Skip timestamps when running under systemd (it adds its own).
	underSystemd := os.Getenv("JOURNAL_STREAM") != ""
	logger := New(colorable.NewColorable(os.Stderr), ll, !isatty.IsTerminal(os.Stderr.Fd()), underSystemd)
	slog.SetDefault(logger)
	return ll
}

// New creates a tint logger writing to w.
func New(w io.Writer, level slog.Leveler, noColor, dropTime bool) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000", // Like time.TimeOnly plus milliseconds.
		NoColor:    noColor,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if dropTime && a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			if isZero(a.Value.Any()) {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// isZero reports attribute values not worth printing.
func isZero(val any) bool {
	switch t := val.(type) {
	case string:
		return t == ""
	case int64:
		return t == 0
	case uint64:
		return t == 0
	case float64:
		return t == 0
	case time.Time:
		return t.IsZero()
	case time.Duration:
		return t == 0
	case nil:
		return true
	}
	return false
}
