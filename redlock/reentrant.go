package redlock

import (
	"context"
	"sync"
	"time"

	"github.com/oliveiracleidson/go-redlock/core"
)

// ReentrantLock composes a *Lock with a local recursion counter bound to
// the same distributed ownership token. It does not embed Lock: the base
// lock's state machine is reused as-is, and reentrancy bookkeeping is
// layered on top.
//
// ReentrantLock is built for the single-owner recursive-call-stack usage
// pattern its name implies (the same goroutine, or a caller serializing
// its own nested critical sections), not for arbitrary concurrent callers
// sharing one ReentrantLock — its own mutex only protects depth
// bookkeeping, not concurrent Acquire/Release races across unrelated
// callers.
type ReentrantLock struct {
	lock *Lock

	mu    sync.Mutex
	depth int
}

// NewReentrantLock wraps lock with recursion bookkeeping.
func NewReentrantLock(lock *Lock) *ReentrantLock {
	return &ReentrantLock{lock: lock}
}

// Depth returns the current recursion depth; 0 means not held.
func (rl *ReentrantLock) Depth() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.depth
}

// Acquire delegates to the base Lock on the first (depth 0) acquisition.
// On a nested acquisition it does not touch any node's write path: it
// confirms ownership via CheckTimes, increments depth, and returns the
// minimum of the reported per-node TTLs. If ownership was lost underfoot
// (CheckTimes reports not-held while depth >= 1), it returns
// core.ErrRedlockViolation — reentry is meaningless once the distributed
// invariant it depends on no longer holds.
func (rl *ReentrantLock) Acquire(ctx context.Context, opts AcquireOptions) (time.Duration, bool, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.depth == 0 {
		validity, ok, err := rl.lock.Acquire(ctx, opts)
		if err != nil || !ok {
			return validity, ok, err
		}
		rl.depth = 1
		return validity, true, nil
	}

	held, perNodeTTLs, err := rl.lock.CheckTimes(ctx)
	if err != nil {
		return 0, false, err
	}
	if !held {
		return 0, false, core.ErrRedlockViolation
	}

	rl.depth++
	return minDuration(perNodeTTLs), true, nil
}

// Release decrements depth. Only the final release (depth reaching 0)
// makes any server calls, via the base Lock's Release.
func (rl *ReentrantLock) Release(ctx context.Context) (bool, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.depth == 0 {
		return false, core.ErrInvalidOperation
	}

	rl.depth--
	if rl.depth > 0 {
		return true, nil
	}
	return rl.lock.Release(ctx)
}

// AcquireOrExtend mirrors Lock.AcquireOrExtend's composition, with depth
// bookkeeping: depth increments on a successful extend and on an initial
// acquire. If the extend fails and the fallback acquire succeeds, depth is
// reset to 1 — the prior recursion count is discarded, matching the
// source's (silent) behavior rather than surfacing an error.
func (rl *ReentrantLock) AcquireOrExtend(ctx context.Context, opts AcquireOptions) (time.Duration, bool, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.depth == 0 {
		validity, ok, err := rl.lock.Acquire(ctx, opts)
		if err == nil && ok {
			rl.depth = 1
		}
		return validity, ok, err
	}

	if validity, ok, err := rl.lock.Extend(ctx); err == nil && ok {
		rl.depth++
		return validity, true, nil
	}

	validity, ok, err := rl.lock.Acquire(ctx, opts)
	if err == nil && ok {
		rl.depth = 1
	}
	return validity, ok, err
}

func minDuration(ds []time.Duration) time.Duration {
	if len(ds) == 0 {
		return 0
	}
	min := ds[0]
	for _, d := range ds[1:] {
		if d < min {
			min = d
		}
	}
	return min
}
