// Package redlock implements the Redlock coordination engine: quorum
// acquisition over N independent Node Adapters, renewal, a background
// auto-renewer, and a reentrant wrapper.
//
// Overview:
// This package is built entirely against core.NodeAdapter and never talks
// to Redis directly; package node supplies the one concrete adapter in
// this repository.
package redlock

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/oliveiracleidson/go-redlock/core"
)

// nodeOp is one of the per-node primitives, closed over a key and token,
// returning only whether it succeeded on that node.
type nodeOp func(ctx context.Context, n core.NodeAdapter) bool

// quorumEngine scatters a nodeOp across every node concurrently and decides
// the round's outcome.
type quorumEngine struct {
	nodes            []core.NodeAdapter
	clockDriftFactor float64
}

func newQuorumEngine(nodes []core.NodeAdapter, clockDriftFactor float64) *quorumEngine {
	return &quorumEngine{nodes: nodes, clockDriftFactor: clockDriftFactor}
}

func (q *quorumEngine) quorum() int {
	return core.Quorum(len(q.nodes))
}

// attempt runs op on every node concurrently, then decides success iff a
// strict majority succeeded AND the remaining validity is positive.
// validity is computed from ttlMillis, the elapsed wall time of the round,
// and the configured clock-drift allowance: ok is false wherever
// majority/validity fails, but the *caller* decides what to do about it —
// attempt never retries on its own.
func (q *quorumEngine) attempt(ctx context.Context, ttlMillis int64, op nodeOp) (ok bool, validityMillis int64) {
	start := time.Now()

	results := make([]bool, len(q.nodes))
	g, gctx := errgroup.WithContext(ctx)
	for i, n := range q.nodes {
		i, n := i, n
		g.Go(func() error {
			results[i] = op(gctx, n)
			return nil
		})
	}
	// op never returns an error (see core.NodeAdapter); Wait only joins.
	_ = g.Wait()

	successes := 0
	for _, r := range results {
		if r {
			successes++
		}
	}

	// Round elapsed time up so a sub-millisecond round still counts as 1ms.
	elapsedMillis := (time.Since(start) + time.Millisecond - 1).Milliseconds()
	drift := int64(float64(ttlMillis)*q.clockDriftFactor) + 2
	validity := ttlMillis - elapsedMillis - drift

	ok = successes >= q.quorum() && validity > 0
	if validity < 0 {
		validity = 0
	}
	return ok, validity
}

// majority runs op on every node concurrently and reports only whether a
// strict majority succeeded, with no validity accounting. Used for
// release, where the spec only requires the majority check.
func (q *quorumEngine) majority(ctx context.Context, op nodeOp) bool {
	results := make([]bool, len(q.nodes))
	g, gctx := errgroup.WithContext(ctx)
	for i, n := range q.nodes {
		i, n := i, n
		g.Go(func() error {
			results[i] = op(gctx, n)
			return nil
		})
	}
	_ = g.Wait()

	successes := 0
	for _, r := range results {
		if r {
			successes++
		}
	}
	return successes >= q.quorum()
}
