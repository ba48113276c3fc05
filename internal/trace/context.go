package trace

import "context"

type (
	tracerKey struct{}
	spanKey   struct{}
)

// SpanContext is the span work is currently attributed to.
type SpanContext struct {
	SpanID uint64
	GID    uint64
}

// FromContext returns the tracer stored in ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if t, ok := lookup[Tracer](ctx, tracerKey{}); ok {
		return t
	}
	return Nop
}

// WithTracer attaches t to ctx; nil stores Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// CurrentSpan returns the span stored in ctx; the zero value means none.
func CurrentSpan(ctx context.Context) SpanContext {
	sc, _ := lookup[SpanContext](ctx, spanKey{})
	return sc
}

// WithSpanContext makes sc the parent of spans begun under ctx.
func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	if ctx == nil {
		return nil
	}
	return context.WithValue(ctx, spanKey{}, sc)
}

func lookup[T any](ctx context.Context, key any) (T, bool) {
	var zero T
	if ctx == nil {
		return zero, false
	}
	v, ok := ctx.Value(key).(T)
	return v, ok
}
