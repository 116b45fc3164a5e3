package redlock

import (
	"context"
	"time"

	"github.com/oliveiracleidson/go-redlock/core"
)

// CheckTimes queries the remaining TTL on every node. perNodeTTLs lists the
// values reported by nodes that confirmed ownership; held is true iff a
// strict majority of nodes confirmed ownership. CheckTimes requires the
// lock to be held locally — it is how a caller discovers the HELD-BUT-LOST
// condition (local token still set, lease actually expired on the nodes).
func (l *Lock) CheckTimes(ctx context.Context) (bool, []time.Duration, error) {
	l.mu.Lock()
	token := l.token
	nodes := l.engine.nodes
	l.mu.Unlock()

	if token == "" {
		return false, nil, core.ErrInvalidOperation
	}

	type result struct {
		ttl int64
		ok  bool
	}
	results := make([]result, len(nodes))
	done := make(chan struct{}, len(nodes))
	for i, n := range nodes {
		i, n := i, n
		go func() {
			ttl, ok := n.Remaining(ctx, l.key, token)
			results[i] = result{ttl: ttl, ok: ok}
			done <- struct{}{}
		}()
	}
	for range nodes {
		<-done
	}

	confirmed := 0
	perNodeTTLs := make([]time.Duration, 0, len(nodes))
	for _, r := range results {
		if r.ok {
			confirmed++
			perNodeTTLs = append(perNodeTTLs, time.Duration(r.ttl)*time.Millisecond)
		}
	}

	return confirmed >= core.Quorum(len(nodes)), perNodeTTLs, nil
}

// Locked reports whether the lock is currently held: false immediately if
// no token is set locally, otherwise the held component of CheckTimes.
func (l *Lock) Locked(ctx context.Context) bool {
	if !l.held() {
		return false
	}
	held, _, err := l.CheckTimes(ctx)
	return err == nil && held
}
