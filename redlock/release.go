package redlock

import (
	"context"

	"go.uber.org/zap"

	"github.com/oliveiracleidson/go-redlock/core"
)

// Release broadcasts release across every node and stops the auto-renewer.
// The local token is cleared unconditionally, even when the majority
// release fails — the caller has declared intent to stop holding, and a
// lingering key on a minority of nodes will expire naturally via its TTL.
// Returns whether a majority of nodes confirmed the release.
//
// Release requires the lock to be held; calling it twice in a row returns
// core.ErrInvalidOperation on the second call, since the first clears the
// token.
func (l *Lock) Release(ctx context.Context) (bool, error) {
	l.mu.Lock()
	token := l.token
	renewer := l.renewer
	l.mu.Unlock()

	if token == "" {
		return false, core.ErrInvalidOperation
	}

	if renewer != nil {
		renewer.stop()
	}

	ok := l.engine.majority(ctx, func(ctx context.Context, n core.NodeAdapter) bool {
		return n.Release(ctx, l.key, token)
	})

	l.mu.Lock()
	l.token = ""
	l.validity = 0
	l.renewer = nil
	l.mu.Unlock()

	l.logger.Debug("redlock: released",
		zap.String("key", l.key),
		zap.Bool("majority_confirmed", ok),
	)
	return ok, nil
}
