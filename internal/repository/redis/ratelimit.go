package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Each reservation attempt lands as a uniquely-named member in a per-caller
// sorted set scored by timestamp; the script trims members older than the
// window, counts what remains and reports how long until the earliest one
// ages out. Running it as one script keeps trim+count atomic.
//
// KEYS[1] = per-caller set
// ARGV[1] = now_ms, ARGV[2] = window_ms, ARGV[3] = limit, ARGV[4] = hit id
const luaSlidingWindow = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local hit = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)
redis.call('ZADD', key, 'NX', now, hit)
local count = redis.call('ZCARD', key)
redis.call('PEXPIRE', key, window)

if count > limit then
  local earliest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
  local earliestScore = tonumber(earliest[2]) or (now - window)
  local retry_ms = window - (now - earliestScore)
  if retry_ms < 0 then retry_ms = 0 end
  return {0, count, retry_ms}
end
return {1, count, 0}
`

// SlidingWindowLimiter bounds reservation attempts per caller so a scripted
// client cannot sweep a flight's seats.
type SlidingWindowLimiter struct {
	rdb    *redis.Client
	prefix string
	limit  int
	window time.Duration
	script *redis.Script
}

func NewSlidingWindowLimiter(
	rdb *redis.Client,
	prefix string,
	limit int,
	window time.Duration,
) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		rdb:    rdb,
		prefix: prefix,
		limit:  limit,
		window: window,
		script: redis.NewScript(luaSlidingWindow),
	}
}

// Allow records one attempt for the caller identified by id and reports
// whether it fits the window. retryAfter is how long the caller must wait
// when it does not.
func (l *SlidingWindowLimiter) Allow(ctx context.Context, id string) (allowed bool, current int64, retryAfter time.Duration, err error) {
	key := fmt.Sprintf("%s:%s", l.prefix, id)

	res, err := l.script.Run(
		ctx,
		l.rdb,
		[]string{key},
		time.Now().UnixMilli(), l.window.Milliseconds(), l.limit, hitID(),
	).Result()
	if err != nil {
		return false, 0, 0, err
	}

	arr, ok := res.([]any)
	if !ok || len(arr) != 3 {
		return false, 0, 0, fmt.Errorf("bad script result: %v", res)
	}

	allowed = scriptInt(arr[0]) == 1
	current = scriptInt(arr[1])
	retryAfter = time.Duration(scriptInt(arr[2])) * time.Millisecond

	return
}

// scriptInt normalizes the numeric shapes go-redis hands back for Lua
// return values.
func scriptInt(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case string:
		var x int64
		fmt.Sscan(t, &x)
		return x
	default:
		return 0
	}
}

func hitID() string {
	b := make([]byte, 12)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
