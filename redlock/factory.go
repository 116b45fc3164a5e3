package redlock

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/oliveiracleidson/go-redlock/core"
	"github.com/oliveiracleidson/go-redlock/node"
)

// minNodes is the floor enforced by the spec: implementations MUST reject
// fewer than 3 nodes, independent of how lopsided the resulting quorum
// would be.
const minNodes = 3

// LockFactory constructs Lock and ReentrantLock instances sharing a fixed
// set of nodes. It is the one explicitly external-collaborator component
// named by the spec: its only non-trivial contract is rejecting a node set
// smaller than minNodes.
type LockFactory struct {
	nodes  []core.NodeAdapter
	logger *zap.Logger
}

// NewLockFactory builds a LockFactory from pre-built node adapters.
// Returns core.ErrInsufficientNodes if fewer than three are supplied.
func NewLockFactory(logger *zap.Logger, nodes ...core.NodeAdapter) (*LockFactory, error) {
	if len(nodes) < minNodes {
		return nil, fmt.Errorf("%w: got %d", core.ErrInsufficientNodes, len(nodes))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LockFactory{nodes: nodes, logger: logger}, nil
}

// NewLockFactoryFromConfig builds a LockFactory from configuration
// mappings (spec's "list of configuration mappings" construction path),
// one RedisNodeAdapter per entry. ttlMillis bounds each adapter's client
// socket timeouts. Returns core.ErrInsufficientNodes if fewer than three
// configurations are supplied; a malformed URL in any entry fails the
// whole construction.
func NewLockFactoryFromConfig(cfgs []core.NodeConfig, ttlMillis int64, logger *zap.Logger) (*LockFactory, error) {
	if len(cfgs) < minNodes {
		return nil, fmt.Errorf("%w: got %d", core.ErrInsufficientNodes, len(cfgs))
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	nodes := make([]core.NodeAdapter, 0, len(cfgs))
	for _, cfg := range cfgs {
		adapter, err := node.NewRedisNodeAdapterFromConfig(cfg, ttlMillis, logger)
		if err != nil {
			return nil, fmt.Errorf("redlock: building node adapter for %s: %w", cfg.URL, err)
		}
		nodes = append(nodes, adapter)
	}

	return &LockFactory{nodes: nodes, logger: logger}, nil
}

// NewLock builds a Lock over the factory's nodes with the given key,
// starting from core.NewLockConfig() and applying opts in order.
func (f *LockFactory) NewLock(key string, opts ...core.ConfigOption) *Lock {
	cfg := core.NewLockConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return NewLock(key, f.nodes, *cfg, f.logger)
}

// NewReentrantLock builds a ReentrantLock over the factory's nodes.
func (f *LockFactory) NewReentrantLock(key string, opts ...core.ConfigOption) *ReentrantLock {
	return NewReentrantLock(f.NewLock(key, opts...))
}
