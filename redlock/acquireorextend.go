package redlock

import (
	"context"
	"time"
)

// AcquireOrExtend renews the lock if already held, falling back to a fresh
// Acquire when not held or when the renewal fails. It is used idempotently
// by recovery paths willing to renew-if-possible, acquire-if-necessary.
func (l *Lock) AcquireOrExtend(ctx context.Context, opts AcquireOptions) (time.Duration, bool, error) {
	if !l.held() {
		return l.Acquire(ctx, opts)
	}

	if validity, ok, err := l.Extend(ctx); err == nil && ok {
		return validity, true, nil
	}

	return l.Acquire(ctx, opts)
}
