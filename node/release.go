package node

import "context"

// Release atomically deletes key iff its current value equals token.
// Transport errors return false.
func (a *RedisNodeAdapter) Release(ctx context.Context, key, token string) bool {
	res, err := a.releaseScript.Run(ctx, a.client, []string{key}, token).Int64()
	if err != nil {
		a.logTransportError(ctx, "release", key, err)
		return false
	}
	return res == 1
}
