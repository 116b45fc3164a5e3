// Package core provides the shared contract, configuration and token
// generation used by the redlock coordination engine.
//
// Overview:
// This package abstracts the single piece every concrete backend must
// supply:
// - A NodeAdapter, the four compare-and-act primitives against one
//   Redis-compatible server
//
// Everything else — quorum accounting, retry/jitter, auto-renewal,
// reentrancy — lives in package redlock and is built against NodeAdapter
// alone, so a second backend only ever needs to add a new NodeAdapter.
package core

import "context"

// NodeAdapter is the thin per-instance contract the Quorum Engine drives.
// A conforming implementation talks to exactly one Redis-compatible server
// and never returns a transport error from these four methods: connection
// refusals, I/O timeouts and the like are absorbed and reported as
// false/absent, so that a single unreachable node never fails a
// quorum-feasible operation.
type NodeAdapter interface {
	// TrySet sets key to token iff key does not already exist, with expiry
	// ttlMillis. Returns true iff the write was performed.
	TrySet(ctx context.Context, key, token string, ttlMillis int64) bool

	// Release atomically deletes key iff its current value equals token.
	// Returns true iff a key was deleted.
	Release(ctx context.Context, key, token string) bool

	// Extend atomically resets key's expiry to ttlMillis iff its current
	// value equals token. Returns true iff the expiry was reset.
	Extend(ctx context.Context, key, token string, ttlMillis int64) bool

	// Remaining atomically returns key's remaining TTL in milliseconds iff
	// its current value equals token. ok is false when ownership could not
	// be confirmed: key absent, held by a different token, or a transport
	// error.
	Remaining(ctx context.Context, key, token string) (ttlMillis int64, ok bool)
}
