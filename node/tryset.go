package node

import (
	"context"
	"time"
)

// TrySet sets key to token iff key does not already exist, with expiry
// ttlMillis. Any transport error (connection refused, I/O timeout) returns
// false; no error propagates.
func (a *RedisNodeAdapter) TrySet(ctx context.Context, key, token string, ttlMillis int64) bool {
	ok, err := a.client.SetNX(ctx, key, token, time.Duration(ttlMillis)*time.Millisecond).Result()
	if err != nil {
		a.logTransportError(ctx, "try_set", key, err)
		return false
	}
	return ok
}
