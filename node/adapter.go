// Package node implements core.NodeAdapter against a single
// Redis-compatible server using github.com/redis/go-redis/v9.
//
// Overview:
// This package realizes the one piece of backend-specific code the redlock
// coordination engine depends on:
// - A conditional-set write (SET NX PX)
// - Three server-side Lua scripts (release / extend / remaining) that make
//   the compare-and-act primitives atomic against a stale holder
//
// Everything else — quorum accounting, retries, auto-renewal, reentrancy —
// lives in package redlock and never imports this package's internals
// directly, only core.NodeAdapter.
package node

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/oliveiracleidson/go-redlock/core"
)

// RedisNodeAdapter adapts a single *redis.Client to core.NodeAdapter.
type RedisNodeAdapter struct {
	client *redis.Client
	logger *zap.Logger

	releaseScript   *redis.Script
	extendScript    *redis.Script
	remainingScript *redis.Script
}

var _ core.NodeAdapter = (*RedisNodeAdapter)(nil)

// NewRedisNodeAdapter builds an adapter from an existing Redis client
// handle. Connection establishment and pooling are the caller's
// responsibility; this constructor only registers the compare-and-act
// scripts.
func NewRedisNodeAdapter(client *redis.Client, logger *zap.Logger) *RedisNodeAdapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisNodeAdapter{
		client:          client,
		logger:          logger,
		releaseScript:   redis.NewScript(releaseScriptSource),
		extendScript:    redis.NewScript(extendScriptSource),
		remainingScript: redis.NewScript(remainingScriptSource),
	}
}

// NewRedisNodeAdapterFromConfig builds an adapter from a url + options
// mapping, the spec's "configuration mappings" construction path. The
// client's read/write timeouts are set to ttlMillis so a node-adapter
// operation can never hang past the lease duration it is serving.
func NewRedisNodeAdapterFromConfig(cfg core.NodeConfig, ttlMillis int64, logger *zap.Logger) (*RedisNodeAdapter, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	if username, ok := cfg.Options["username"]; ok {
		opts.Username = username
	}
	if password, ok := cfg.Options["password"]; ok {
		opts.Password = password
	}

	timeout := time.Duration(ttlMillis) * time.Millisecond
	opts.ReadTimeout = timeout
	opts.WriteTimeout = timeout

	return NewRedisNodeAdapter(redis.NewClient(opts), logger), nil
}

// Close releases the underlying client's connection pool. Not part of
// core.NodeAdapter; only meaningful when the adapter, rather than the
// caller, owns the client's lifecycle (see
// NewRedisNodeAdapterFromConfig).
func (a *RedisNodeAdapter) Close() error {
	return a.client.Close()
}

// Ping probes the node's reachability. Not part of core.NodeAdapter and
// not used by the quorum protocol itself; useful for a caller's own health
// monitoring.
func (a *RedisNodeAdapter) Ping(ctx context.Context) error {
	return a.client.Ping(ctx).Err()
}

func (a *RedisNodeAdapter) logTransportError(ctx context.Context, op, key string, err error) {
	a.logger.Debug("redlock: node adapter transport error",
		zap.String("op", op),
		zap.String("key", key),
		zap.Error(err),
	)
}
