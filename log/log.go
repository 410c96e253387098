// Package log provides the leveled, structured logger used across cachesim.
//
// Callers write log.Debug/Info/Warn/Error with a message followed by
// alternating key/value context, e.g. log.Warn("skipping malformed trace
// line", "line", lineNo, "text", text). Under the hood it is a thin wrapper
// around log/slog so the rest of the module never imports slog directly.
package log

import (
	"io"
	"log/slog"
	"os"
)

var root = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

// SetDefault replaces the package-level logger, e.g. to raise verbosity or
// redirect output during tests.
func SetDefault(l *slog.Logger) {
	root = l
}

// SetOutput points the default handler at w, preserving the current level.
func SetOutput(w io.Writer, level slog.Level) {
	root = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func Debug(msg string, ctx ...any) { root.Debug(msg, ctx...) }
func Info(msg string, ctx ...any)  { root.Info(msg, ctx...) }
func Warn(msg string, ctx ...any)  { root.Warn(msg, ctx...) }
func Error(msg string, ctx ...any) { root.Error(msg, ctx...) }
