package common

import "context"

// CallerContext identifies the authenticated caller of a stub API request.
type CallerContext struct {
	Key           string
	CorrelationID string
}

type contextKey int

const callerContextKey contextKey = iota

// WithCallerContext stores a CallerContext in the request context.
func WithCallerContext(ctx context.Context, cc *CallerContext) context.Context {
	return context.WithValue(ctx, callerContextKey, cc)
}

// CallerContextFromContext retrieves the CallerContext from context, or nil if absent.
func CallerContextFromContext(ctx context.Context) *CallerContext {
	cc, _ := ctx.Value(callerContextKey).(*CallerContext)
	return cc
}

// CorrelationIDFromContext returns the correlation id of the request, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	if cc := CallerContextFromContext(ctx); cc != nil {
		return cc.CorrelationID
	}
	return ""
}
