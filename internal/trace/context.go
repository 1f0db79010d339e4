package trace

import "context"

// ctxKey is the key type for storing a Tracer in context.
type ctxKey struct{}

// WithTracer attaches a Tracer to context. Composition-root code creates the
// tracer once and threads it through explicitly; there is no process-wide
// singleton.
func WithTracer(ctx context.Context, t *Tracer) context.Context {
	return context.WithValue(ctx, ctxKey{}, t)
}

// FromContext extracts the Tracer from context. Reading a context that was
// never given a tracer is an initialization-order mistake and reports
// ErrNoTracer.
func FromContext(ctx context.Context) (*Tracer, error) {
	if ctx == nil {
		return nil, ErrNoTracer
	}
	if t, ok := ctx.Value(ctxKey{}).(*Tracer); ok && t != nil {
		return t, nil
	}
	return nil, ErrNoTracer
}
