package node_test

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/oliveiracleidson/go-redlock/node"
)

func newTestAdapter(t *testing.T) (*node.RedisNodeAdapter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return node.NewRedisNodeAdapter(client, zap.NewNop()), mr
}
