package log

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

type contextKey struct{}

// SetContextLogger returns a copy of ctx carrying lg. A nil lg stores a
// NoopLogger. If ctx carries a valid span, lg is wrapped in a SpanLogger
// recording to that span.
func SetContextLogger(ctx context.Context, lg Logger) context.Context {
	if lg == nil {
		lg = NewNoopLogger()
	}

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		lg = NewSpanLogger(lg, NewOtelSpanEventRecorder(span))
	}

	return context.WithValue(ctx, contextKey{}, lg)
}

// FromContext returns the logger stored in ctx, or a NoopLogger.
func FromContext(ctx context.Context) Logger {
	if lg, ok := ContextLogger(ctx); ok {
		return lg
	}
	return NewNoopLogger()
}

// ContextLogger returns the logger stored in ctx by SetContextLogger and
// whether there was one.
func ContextLogger(ctx context.Context) (Logger, bool) {
	lg, ok := ctx.Value(contextKey{}).(Logger)
	return lg, ok
}
