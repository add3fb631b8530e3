package logger

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// New builds the process-wide structured logger. Output is always JSON
// so log lines stay machine-parseable in every environment; local and
// dev builds get debug level, everything else runs at info.
func New(appEnv string) *slog.Logger {
	level := slog.LevelInfo
	if appEnv == "local" || appEnv == "dev" {
		level = slog.LevelDebug
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}

type ctxKey struct{}

// With returns a context carrying l. The HTTP middleware uses it to
// hand the request-scoped logger down to services.
func With(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From returns the logger carried by ctx, or slog.Default() when none
// was attached. Safe to call on any context.
func From(ctx context.Context) *slog.Logger {
	if v := ctx.Value(ctxKey{}); v != nil {
		if l, ok := v.(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return slog.Default()
}

// ShutdownFlush exists so main can flush buffered handlers on shutdown.
// The JSON handler writes through to stdout, so today it has nothing
// to do.
func ShutdownFlush(_ context.Context, _ time.Duration) error { return nil }
