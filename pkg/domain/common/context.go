package common

import "context"

// ContextKey namespaces values carried on a context.Context so they don't
// collide with keys set by other packages.
type ContextKey string

// RequestIDKey carries a per-RPC correlation id set by transport middleware.
const RequestIDKey ContextKey = "x-request-id"

// RequestIDFromContext returns the correlation id stamped by the transport's
// request-id middleware, or "" if none is set (e.g. in tests that construct
// a context directly).
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}
