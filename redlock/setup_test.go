package redlock_test

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/oliveiracleidson/go-redlock/core"
	"github.com/oliveiracleidson/go-redlock/node"
	"github.com/oliveiracleidson/go-redlock/redlock"
)

// newTestNodes spins up n independent in-memory Redis servers and wraps
// each in its own node.RedisNodeAdapter, simulating N non-replicated
// instances.
func newTestNodes(t *testing.T, n int) ([]core.NodeAdapter, []*miniredis.Miniredis) {
	t.Helper()

	nodes := make([]core.NodeAdapter, n)
	servers := make([]*miniredis.Miniredis, n)
	for i := 0; i < n; i++ {
		mr := miniredis.RunT(t)
		client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })

		nodes[i] = node.NewRedisNodeAdapter(client, zap.NewNop())
		servers[i] = mr
	}
	return nodes, servers
}

func newTestLock(t *testing.T, key string, n int, cfg core.LockConfig) (*redlock.Lock, []*miniredis.Miniredis) {
	t.Helper()
	nodes, servers := newTestNodes(t, n)
	return redlock.NewLock(key, nodes, cfg, zap.NewNop()), servers
}
