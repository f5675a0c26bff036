//go:build !notrace

package utfconv

import (
	"context"
	"log/slog"
	"runtime"
)

type traceLoggerKey struct{}

// TracingEnabled reports whether this build emits trace events. Build
// with -tags notrace to compile them out.
const TracingEnabled = true

// the null logger is a logger that does nothing
var nullLogger = slog.New(slog.DiscardHandler)

// WithTraceLogger returns a context carrying tlog. ReadFile, WriteFile
// and ValidateFile log what they detect and do to it at debug level.
func WithTraceLogger(ctx context.Context, tlog *slog.Logger) context.Context {
	// If the context already has a trace logger, return the context as is
	if _, ok := ctx.Value(traceLoggerKey{}).(*slog.Logger); ok {
		return ctx
	}

	return context.WithValue(ctx, traceLoggerKey{}, tlog)
}

// TraceEvent logs msg at debug level to the context's trace logger.
func TraceEvent(ctx context.Context, msg string, attrs ...slog.Attr) {
	getTraceLogFromContext(ctx).LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
}

func getTraceLogFromContext(ctx context.Context) *slog.Logger {
	if tlog, ok := ctx.Value(traceLoggerKey{}).(*slog.Logger); ok {
		// Retrieve the function name of the caller for tracing
		pc, _, _, ok := runtime.Caller(2)
		if ok {
			fn := runtime.FuncForPC(pc)
			if fn != nil {
				tlog = tlog.With(slog.String("fn", fn.Name()))
			}
		}

		return tlog
	}

	return nullLogger
}
