package redlock

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/oliveiracleidson/go-redlock/core"
)

// Lock is the user-facing distributed mutual-exclusion primitive. A Lock
// is held iff its internal token is set; see Locked and CheckTimes for how
// the HELD-BUT-LOST condition (lease silently expired on a majority of
// nodes while the local state still shows a token) is observed.
//
// A Lock is not safe to share a single acquisition across goroutines
// without external synchronization, but its methods are individually safe
// for concurrent use: the auto-renewer and a caller calling Release
// concurrently cannot tear the token or leave the renewer running past
// release.
type Lock struct {
	key    string
	cfg    core.LockConfig
	engine *quorumEngine
	logger *zap.Logger

	mu       sync.Mutex
	token    string
	validity time.Duration
	renewer  *autoRenewer
}

// NewLock builds a Lock over the given nodes. Callers normally obtain a
// Lock from a LockFactory, which enforces the minimum node count; NewLock
// itself trusts its caller and does not repeat that check.
func NewLock(key string, nodes []core.NodeAdapter, cfg core.LockConfig, logger *zap.Logger) *Lock {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Lock{
		key:    key,
		cfg:    cfg,
		engine: newQuorumEngine(nodes, cfg.ClockDriftFactor),
		logger: logger,
	}
}

// Key returns the lock identity shared across all nodes.
func (l *Lock) Key() string { return l.key }

// held reports whether a token is currently set, without contacting any
// node. Callers wanting to know whether the lease is still valid on a
// majority of nodes should use Locked or CheckTimes instead.
func (l *Lock) held() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.token != ""
}
