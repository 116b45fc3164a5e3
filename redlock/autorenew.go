package redlock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// autoRenewer is a cooperatively cancellable background task: cancel is
// called to request a stop, done is closed exactly once, by the renewer
// goroutine itself, when it actually exits. Modeling stop this way — a
// cancellation handle plus a channel the goroutine itself closes — is what
// keeps stop idempotent and deadlock-free even when the renewer's own
// failure path is the one ending the loop: that path only ever returns
// (triggering the deferred close), it never blocks waiting on done itself.
type autoRenewer struct {
	cancel context.CancelFunc
	done   chan struct{}
	// cycleID tags every log line emitted by one renewer lifetime, so a
	// stop/restart pair (e.g. after AcquireOrExtend falls back to a fresh
	// acquire) doesn't get its log lines conflated with the previous one.
	// Not a security token, just a correlation nonce.
	cycleID string
}

// stop requests cancellation and blocks until the renewer goroutine has
// actually exited. Safe to call more than once; context.CancelFunc is
// idempotent and reading from an already-closed channel never blocks.
func (r *autoRenewer) stop() {
	r.cancel()
	<-r.done
}

// startAutoExtend starts the background renewer if one is not already
// running. The interval between extends is ttl/2, strictly less than the
// lease duration with headroom for drift and RPC latency, per the spec's
// "a simple, testable choice is ttl_ms / 2".
func (l *Lock) startAutoExtend(deadline *time.Duration) {
	l.mu.Lock()
	if l.renewer != nil {
		l.mu.Unlock()
		return
	}

	var ctx context.Context
	var cancel context.CancelFunc
	if deadline != nil {
		ctx, cancel = context.WithTimeout(context.Background(), *deadline)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}

	renewer := &autoRenewer{cancel: cancel, done: make(chan struct{}), cycleID: uuid.NewString()}
	l.renewer = renewer
	l.mu.Unlock()

	l.logger.Debug("redlock: auto-renewer starting",
		zap.String("key", l.key),
		zap.String("cycle_id", renewer.cycleID),
	)
	go l.runAutoExtend(ctx, renewer)
}

// StopAutoExtend stops the background renewer, if any, and waits for it to
// exit. A no-op if no renewer is running.
func (l *Lock) StopAutoExtend() {
	l.mu.Lock()
	renewer := l.renewer
	l.renewer = nil
	l.mu.Unlock()

	if renewer != nil {
		renewer.stop()
	}
}

func (l *Lock) runAutoExtend(ctx context.Context, renewer *autoRenewer) {
	defer close(renewer.done)

	interval := time.Duration(l.cfg.TTLMillis/2) * time.Millisecond
	if interval <= 0 {
		interval = time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.mu.Lock()
			if l.renewer == renewer {
				l.renewer = nil
			}
			l.mu.Unlock()
			l.logger.Debug("redlock: auto-renewer stopping, stopped or deadline reached",
				zap.String("key", l.key),
				zap.String("cycle_id", renewer.cycleID),
			)
			return
		case <-ticker.C:
			_, ok, err := l.Extend(ctx)
			if err == nil && ok {
				continue
			}

			l.mu.Lock()
			if l.renewer == renewer {
				l.renewer = nil
			}
			l.mu.Unlock()

			if ctx.Err() != nil {
				// The deadline fired, or stop() cancelled the context, while
				// the extend was in flight; Extend returned (0, false, nil).
				// Not a quorum failure, just the cancellation doing its job.
				l.logger.Debug("redlock: auto-renewer stopping, stopped or deadline reached",
					zap.String("key", l.key),
					zap.String("cycle_id", renewer.cycleID),
				)
			} else {
				l.logger.Warn("redlock: auto-renewer stopping, extend failed",
					zap.String("key", l.key),
					zap.String("cycle_id", renewer.cycleID),
				)
			}
			return
		}
	}
}
