package services

import (
	"context"
	"time"
)

// withTimeout bounds a single data-access call. A zero timeout leaves ctx
// untouched.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
