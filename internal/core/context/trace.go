package context

import "context"

// TraceContext identifies the request a piece of work belongs to.
type TraceContext struct {
	TraceID   string
	SpanID    string
	RequestID string // echoed in X-Request-ID
}

type traceContextKey struct{}

// WithTrace attaches trace to ctx.
func WithTrace(ctx context.Context, trace *TraceContext) context.Context {
	return context.WithValue(ctx, traceContextKey{}, trace)
}

// GetTrace returns the request's TraceContext, or nil outside a request.
func GetTrace(ctx context.Context) *TraceContext {
	trace, _ := ctx.Value(traceContextKey{}).(*TraceContext)
	return trace
}
