// Package logger implements a logging adapter using log/slog.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync/atomic"

	"go.trai.ch/pakt/internal/core/ports"
)

// Logger implements ports.Logger using log/slog. Diagnostics go to stderr
// so stdout stays free for command output.
type Logger struct {
	logger atomic.Pointer[slog.Logger]
}

// New creates a new Logger instance.
func New() ports.Logger {
	l := &Logger{}
	l.SetOutput(os.Stderr)
	return l
}

// SetOutput swaps the logger's output destination. Safe to call while other
// goroutines are logging; in-flight records finish on the old destination.
func (l *Logger) SetOutput(w io.Writer) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	l.logger.Store(slog.New(handler))
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.logger.Load().Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.logger.Load().Warn(msg)
}

// Error logs an error with its context attributes.
func (l *Logger) Error(err error) {
	l.logger.Load().Error("operation failed", "error", err)
}
