package internal

import (
	"context"
	"time"
)

type ctxKey string

const ContextIdentityKey ctxKey = "identityID"

func IdentityIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if identityID, ok := ctx.Value(ContextIdentityKey).(string); ok {
		return identityID
	}
	return ""
}

func ContextWithIdentityID(ctx context.Context, identityID string) context.Context {
	return context.WithValue(ctx, ContextIdentityKey, identityID)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
// Store calls in the auth path always run under it so a stalled database
// cannot hold an authorization decision open.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
