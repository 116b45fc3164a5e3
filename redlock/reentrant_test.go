package redlock_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oliveiracleidson/go-redlock/core"
	"github.com/oliveiracleidson/go-redlock/redlock"
)

// Scenario 7: reentrant acquire/release nesting.
func TestReentrantLock_NestedAcquireRelease(t *testing.T) {
	ctx := context.Background()
	base, _ := newTestLock(t, "reentrant-nesting", 3, cfgWithTTL(2000))
	rlock := redlock.NewReentrantLock(base)

	opts := redlock.AcquireOptions{Blocking: false, Timeout: redlock.NoTimeout}

	_, ok, err := rlock.Acquire(ctx, opts)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, rlock.Depth())

	validity, ok, err := rlock.Acquire(ctx, opts)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, rlock.Depth())
	assert.Greater(t, validity, time.Duration(0))

	// First release only decrements depth; the base lock is untouched.
	released, err := rlock.Release(ctx)
	require.NoError(t, err)
	assert.True(t, released)
	assert.Equal(t, 1, rlock.Depth())
	assert.True(t, base.Locked(ctx), "base lock still held after a nested release")

	// Final release actually releases the base lock.
	released, err = rlock.Release(ctx)
	require.NoError(t, err)
	assert.True(t, released)
	assert.Equal(t, 0, rlock.Depth())
	assert.False(t, base.Locked(ctx))
}

// Scenario 8: ownership lost during reentry.
func TestReentrantLock_OwnershipLostDuringReentry(t *testing.T) {
	ctx := context.Background()
	base, servers := newTestLock(t, "reentrant-lost", 3, cfgWithTTL(2000))
	rlock := redlock.NewReentrantLock(base)

	opts := redlock.AcquireOptions{Blocking: false, Timeout: redlock.NoTimeout}

	_, ok, err := rlock.Acquire(ctx, opts)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, rlock.Depth())

	// Simulate the lease silently expiring on a majority of nodes: a
	// strict majority of CheckTimes calls will now fail to confirm
	// ownership.
	servers[0].Close()
	servers[1].Close()

	_, ok, err = rlock.Acquire(ctx, opts)
	assert.False(t, ok)
	assert.ErrorIs(t, err, core.ErrRedlockViolation)
	assert.Equal(t, 1, rlock.Depth(), "depth is untouched by a failed reentry")
}

// Release requires the lock to be held.
func TestReentrantLock_ReleaseWithoutAcquireIsInvalidOperation(t *testing.T) {
	ctx := context.Background()
	base, _ := newTestLock(t, "reentrant-unheld", 3, cfgWithTTL(1000))
	rlock := redlock.NewReentrantLock(base)

	_, err := rlock.Release(ctx)
	assert.ErrorIs(t, err, core.ErrInvalidOperation)
}
