// Package logger wraps slog with the small surface the services need:
// structured key/value logging plus a Fatal for startup failures.
package logger

import (
	"log/slog"
	"os"
)

// Logger is a slog.Logger writing text records to stdout.
type Logger struct {
	*slog.Logger
}

// New returns a Logger emitting records at or above the given slog level.
func New(level int) *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.Level(level)})),
	}
}

// Fatal logs at error level and exits the process.
func (l *Logger) Fatal(msg string, args ...any) {
	l.Logger.Error(msg, args...)
	os.Exit(1)
}
