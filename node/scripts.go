package node

// Server-side compare-and-act scripts, registered once per adapter at
// construction (see NewRedisNodeAdapter). go-redis's *redis.Script is lazy:
// the first Run issues EVALSHA and falls back to EVAL on a NOSCRIPT reply,
// caching the SHA for subsequent calls. That makes "registration" here a
// local construction, not an eager round trip — the idiomatic go-redis
// equivalent of the source's eager register_script.
const (
	releaseScriptSource = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end`

	extendScriptSource = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("pexpire", KEYS[1], ARGV[2])
else
	return 0
end`

	remainingScriptSource = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("pttl", KEYS[1])
else
	return nil
end`
)
