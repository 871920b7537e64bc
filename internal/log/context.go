package log

import (
	"context"
	"log/slog"
)

type contextKey struct{}

// IntoContext returns a context carrying the logger. The HTTP middleware
// stores the request-scoped logger here so deeper layers can log with the
// request id attached.
func IntoContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored by IntoContext, or a logger over
// slog.Default when the context carries none.
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(contextKey{}).(*Logger); ok {
		return logger
	}
	return &Logger{Logger: slog.Default(), component: ComponentApp}
}
