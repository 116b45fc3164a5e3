package node

import "context"

// Extend atomically resets key's expiry to ttlMillis iff its current value
// equals token. Transport errors return false.
func (a *RedisNodeAdapter) Extend(ctx context.Context, key, token string, ttlMillis int64) bool {
	res, err := a.extendScript.Run(ctx, a.client, []string{key}, token, ttlMillis).Int64()
	if err != nil {
		a.logTransportError(ctx, "extend", key, err)
		return false
	}
	return res == 1
}
