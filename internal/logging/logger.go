// Package logging defines a minimal structured-logging interface used across
// the client. Adapters wrap log/slog and zerolog; New picks one by format.
package logging

import (
	"context"
	"io"
	"log/slog"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "login succeeded", "email", email)
type Logger interface {
	// Debug logs diagnostic details that are noisy in normal operation.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Supported output formats for New.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatConsole = "console"
)

// New builds a Logger writing to w in the given format. "text" and "json"
// use log/slog handlers, "console" uses zerolog's human-readable writer.
// Unknown formats fall back to text.
func New(format string, w io.Writer) Logger {
	switch format {
	case FormatJSON:
		return NewSlogLogger(slog.New(slog.NewJSONHandler(w, nil)))
	case FormatConsole:
		return NewConsoleLogger(w)
	default:
		return NewSlogLogger(slog.New(slog.NewTextHandler(w, nil)))
	}
}

// Nop returns a Logger that discards everything. Handy in tests.
func Nop() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
