package redlock

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/oliveiracleidson/go-redlock/core"
)

// Extend broadcasts a renewal across every node, retrying up to
// cfg.RetryTimes times with the same jitter policy as Acquire (not
// wall-clock bounded). On quorum success with positive validity it returns
// the new validity and true; on failure it returns zero/false but does NOT
// clear the token — the caller may retry, and the lease may simply have
// lapsed without the caller yet observing it (see Locked).
//
// Extend requires the lock to be held.
func (l *Lock) Extend(ctx context.Context) (time.Duration, bool, error) {
	l.mu.Lock()
	token := l.token
	l.mu.Unlock()

	if token == "" {
		return 0, false, core.ErrInvalidOperation
	}

	attempts := l.cfg.RetryTimes + 1
	for attempt := 0; attempt < attempts; attempt++ {
		if validity, ok := l.tryExtendOnce(ctx, token); ok {
			return validity, true, nil
		}

		if attempt == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return 0, false, nil
		case <-time.After(jitter(l.cfg.RetryDelayMillis)):
		}
	}

	return 0, false, nil
}

func (l *Lock) tryExtendOnce(ctx context.Context, token string) (time.Duration, bool) {
	ttlMillis := l.cfg.TTLMillis
	ok, validityMillis := l.engine.attempt(ctx, ttlMillis, func(ctx context.Context, n core.NodeAdapter) bool {
		return n.Extend(ctx, l.key, token, ttlMillis)
	})

	if !ok {
		l.logger.Debug("redlock: extend failed", zap.String("key", l.key))
		return 0, false
	}

	validity := time.Duration(validityMillis) * time.Millisecond
	l.mu.Lock()
	l.validity = validity
	l.mu.Unlock()

	l.logger.Debug("redlock: extended",
		zap.String("key", l.key),
		zap.Int64("validity_ms", validityMillis),
	)
	return validity, true
}
