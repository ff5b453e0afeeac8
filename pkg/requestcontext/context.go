// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values. Middleware sets them; services read them without
// importing net/http.
package requestcontext

import (
	"context"
	"time"
)

type requestTimeKey struct{}

// ContextKeyRequestTime is exported for tests that need context.WithValue.
var ContextKeyRequestTime = requestTimeKey{}

// Now retrieves the request-scoped time from context. Every audit record
// produced by one request carries the same timestamp this way.
// Falls back to time.Now() when not set (workers, CLI, tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context. Useful for service unit
// tests that don't run the full HTTP middleware chain.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
