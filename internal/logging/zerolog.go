package logging

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"
)

type ZerologLogger struct {
	l zerolog.Logger
}

func NewZerologLogger(l zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{l: l}
}

// NewConsoleLogger writes colored, human-readable lines to w at debug level.
func NewConsoleLogger(w io.Writer) *ZerologLogger {
	l := zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger().
		Level(zerolog.DebugLevel)
	return NewZerologLogger(l)
}

// checkFields drops a key-value list with an odd length; zerolog would
// otherwise misalign every following pair.
func (z *ZerologLogger) checkFields(args []any) []any {
	if len(args)%2 != 0 {
		z.l.Warn().Int("fields_count", len(args)).Msg("odd number of log fields, fields ignored")
		return nil
	}
	return args
}

func (z *ZerologLogger) Debug(ctx context.Context, msg string, args ...any) {
	z.l.Debug().Ctx(ctx).Fields(z.checkFields(withContextFields(ctx, args))).Msg(msg)
}

func (z *ZerologLogger) Info(ctx context.Context, msg string, args ...any) {
	z.l.Info().Ctx(ctx).Fields(z.checkFields(withContextFields(ctx, args))).Msg(msg)
}

func (z *ZerologLogger) Warn(ctx context.Context, msg string, args ...any) {
	z.l.Warn().Ctx(ctx).Fields(z.checkFields(withContextFields(ctx, args))).Msg(msg)
}

func (z *ZerologLogger) Error(ctx context.Context, msg string, args ...any) {
	z.l.Error().Ctx(ctx).Fields(z.checkFields(withContextFields(ctx, args))).Msg(msg)
}

func (z *ZerologLogger) With(args ...any) Logger {
	return &ZerologLogger{l: z.l.With().Fields(z.checkFields(args)).Logger()}
}
