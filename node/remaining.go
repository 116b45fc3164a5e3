package node

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Remaining atomically returns key's remaining TTL in milliseconds iff its
// current value equals token. ok is false both when ownership could not be
// confirmed and when a transport error occurred; the two are
// indistinguishable to the caller by design (see core.NodeAdapter).
func (a *RedisNodeAdapter) Remaining(ctx context.Context, key, token string) (int64, bool) {
	res, err := a.remainingScript.Run(ctx, a.client, []string{key}, token).Int64()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			a.logTransportError(ctx, "remaining", key, err)
		}
		return 0, false
	}
	return res, true
}
