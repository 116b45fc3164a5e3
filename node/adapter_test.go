package node_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisNodeAdapter_TrySet(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	t.Run("first writer wins", func(t *testing.T) {
		ok := adapter.TrySet(ctx, "key-tryset-1", "token-a", 1000)
		require.True(t, ok)

		ok = adapter.TrySet(ctx, "key-tryset-1", "token-b", 1000)
		assert.False(t, ok, "key already exists, second writer must lose")
	})

	t.Run("transport failure returns false, not error", func(t *testing.T) {
		adapter, mr := newTestAdapter(t)
		mr.Close()

		ok := adapter.TrySet(ctx, "key-tryset-down", "token-a", 1000)
		assert.False(t, ok)
	})
}

func TestRedisNodeAdapter_Release(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	require.True(t, adapter.TrySet(ctx, "key-release", "token-a", 1000))

	t.Run("wrong token does not release", func(t *testing.T) {
		ok := adapter.Release(ctx, "key-release", "token-b")
		assert.False(t, ok)
	})

	t.Run("owning token releases", func(t *testing.T) {
		ok := adapter.Release(ctx, "key-release", "token-a")
		assert.True(t, ok)

		// key is gone, re-acquire succeeds
		ok = adapter.TrySet(ctx, "key-release", "token-c", 1000)
		assert.True(t, ok)
	})

	t.Run("releasing an absent key returns false", func(t *testing.T) {
		ok := adapter.Release(ctx, "key-release-never-set", "token-a")
		assert.False(t, ok)
	})
}

func TestRedisNodeAdapter_Extend(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	require.True(t, adapter.TrySet(ctx, "key-extend", "token-a", 1000))

	t.Run("wrong token does not extend", func(t *testing.T) {
		ok := adapter.Extend(ctx, "key-extend", "token-b", 5000)
		assert.False(t, ok)
	})

	t.Run("owning token extends", func(t *testing.T) {
		ok := adapter.Extend(ctx, "key-extend", "token-a", 5000)
		assert.True(t, ok)

		ttl, ok := adapter.Remaining(ctx, "key-extend", "token-a")
		require.True(t, ok)
		assert.Greater(t, ttl, int64(1000))
	})
}

func TestRedisNodeAdapter_Remaining(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	require.True(t, adapter.TrySet(ctx, "key-remaining", "token-a", 10_000))

	t.Run("owning token sees a positive ttl", func(t *testing.T) {
		ttl, ok := adapter.Remaining(ctx, "key-remaining", "token-a")
		require.True(t, ok)
		assert.Greater(t, ttl, int64(0))
		assert.LessOrEqual(t, ttl, int64(10_000))
	})

	t.Run("non-owning token sees absent", func(t *testing.T) {
		_, ok := adapter.Remaining(ctx, "key-remaining", "token-b")
		assert.False(t, ok)
	})

	t.Run("absent key sees absent", func(t *testing.T) {
		_, ok := adapter.Remaining(ctx, "key-remaining-never-set", "token-a")
		assert.False(t, ok)
	})
}
