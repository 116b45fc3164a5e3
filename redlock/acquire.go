package redlock

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/oliveiracleidson/go-redlock/core"
)

// NoTimeout is the sentinel AcquireOptions.Timeout value meaning "retry up
// to RetryTimes times with no wall-clock cap".
const NoTimeout = time.Duration(-1)

// AcquireOptions configures a single call to Lock.Acquire.
type AcquireOptions struct {
	// Blocking, when true, retries on failure per the lock's configured
	// RetryTimes/RetryDelayMillis. When false, Acquire tries exactly once
	// and Timeout must equal NoTimeout.
	Blocking bool

	// Timeout is the wall-clock budget for the blocking attempt loop.
	// NoTimeout means "no wall-clock cap"; any value >= 0 means "give up
	// once the budget is exceeded".
	Timeout time.Duration

	// AutoExtend starts the background auto-renewer on a successful
	// acquisition.
	AutoExtend bool

	// AutoExtendDeadline, if non-nil, stops the auto-renewer once reached,
	// even if extend calls are still succeeding.
	AutoExtendDeadline *time.Duration
}

// DefaultAcquireOptions returns the spec's default options: blocking, no
// wall-clock cap, auto-extend on, no auto-extend deadline.
func DefaultAcquireOptions() AcquireOptions {
	return AcquireOptions{
		Blocking:   true,
		Timeout:    NoTimeout,
		AutoExtend: true,
	}
}

// Acquire attempts to acquire the lock. On success it returns the
// remaining validity and true; on failure, a zero duration and false. err
// is non-nil only for a caller contract violation (non-blocking acquire
// with an explicit timeout) — never for an ordinary failed acquisition.
func (l *Lock) Acquire(ctx context.Context, opts AcquireOptions) (time.Duration, bool, error) {
	if !opts.Blocking && opts.Timeout != NoTimeout {
		return 0, false, fmt.Errorf("%w: non-blocking acquire must not set a timeout", core.ErrInvalidArgument)
	}

	var validity time.Duration
	var acquired bool

	if !opts.Blocking {
		validity, acquired = l.tryAcquireOnce(ctx)
	} else {
		validity, acquired = l.acquireBlocking(ctx, opts.Timeout)
	}

	if acquired && opts.AutoExtend {
		l.startAutoExtend(opts.AutoExtendDeadline)
	}

	return validity, acquired, nil
}

// tryAcquireOnce is the spec's single-attempt _acquire: generate a fresh
// token, try it on every node, and on a failed quorum clean up whatever
// was written before returning.
func (l *Lock) tryAcquireOnce(ctx context.Context) (time.Duration, bool) {
	token, err := core.GenerateToken()
	if err != nil {
		l.logger.Warn("redlock: token generation failed", zap.Error(err))
		return 0, false
	}

	ttlMillis := l.cfg.TTLMillis
	ok, validityMillis := l.engine.attempt(ctx, ttlMillis, func(ctx context.Context, n core.NodeAdapter) bool {
		return n.TrySet(ctx, l.key, token, ttlMillis)
	})

	if ok {
		l.mu.Lock()
		l.token = token
		l.validity = time.Duration(validityMillis) * time.Millisecond
		l.mu.Unlock()

		l.logger.Debug("redlock: acquired",
			zap.String("key", l.key),
			zap.Int64("validity_ms", validityMillis),
		)
		return time.Duration(validityMillis) * time.Millisecond, true
	}

	// Best-effort cleanup of whatever partial writes happened before the
	// quorum check failed; the token belongs to no one now.
	l.engine.majority(ctx, func(ctx context.Context, n core.NodeAdapter) bool {
		return n.Release(ctx, l.key, token)
	})

	l.logger.Debug("redlock: acquire failed, cleaned up partial writes",
		zap.String("key", l.key),
	)
	return 0, false
}

// acquireBlocking retries tryAcquireOnce per the lock's RetryTimes, sleeping
// a uniform jitter in between, honoring an optional wall-clock deadline.
func (l *Lock) acquireBlocking(ctx context.Context, timeout time.Duration) (time.Duration, bool) {
	var deadline time.Time
	hasDeadline := timeout != NoTimeout
	if hasDeadline {
		deadline = time.Now().Add(timeout)
	}

	attempts := l.cfg.RetryTimes + 1
	for attempt := 0; attempt < attempts; attempt++ {
		if validity, ok := l.tryAcquireOnce(ctx); ok {
			return validity, true
		}

		if attempt == attempts-1 {
			break
		}

		sleep := jitter(l.cfg.RetryDelayMillis)
		if hasDeadline && time.Now().Add(sleep).After(deadline) {
			return 0, false
		}

		select {
		case <-ctx.Done():
			return 0, false
		case <-time.After(sleep):
		}
	}

	return 0, false
}

// jitter returns a uniformly random duration in [0, delayMillis]
// milliseconds, converted to a time.Duration without truncating small
// delays to zero.
func jitter(delayMillis int64) time.Duration {
	if delayMillis <= 0 {
		return 0
	}
	n := rand.Int64N(delayMillis + 1)
	return time.Duration(n) * time.Millisecond
}
