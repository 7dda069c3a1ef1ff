package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/creatorkit/server/internal/port/outbound"
	"github.com/redis/go-redis/v9"
)

const rateLimitKeyPrefix = "ratelimit:"

// slidingWindowScript trims the window, then admits n entries only if the
// result stays within the limit. Running it as one script keeps concurrent
// callers from both observing room for the last slot.
//
// KEYS[1] key, ARGV: now (ns), window start (ns), n, limit, ttl (ms)
var slidingWindowScript = redis.NewScript(`
redis.call('ZREMRANGEBYSCORE', KEYS[1], 0, ARGV[2])
local count = redis.call('ZCARD', KEYS[1])
local n = tonumber(ARGV[3])
if count + n > tonumber(ARGV[4]) then
  return 0
end
for i = 0, n - 1 do
  redis.call('ZADD', KEYS[1], tonumber(ARGV[1]) + i, ARGV[1] .. '-' .. i)
end
redis.call('PEXPIRE', KEYS[1], ARGV[5])
return 1
`)

// rateLimiter implements outbound.RateLimiterPort.
type rateLimiter struct {
	client *redis.Client
	now    func() time.Time
}

// NewRateLimiter creates a new rate limiter adapter.
func NewRateLimiter(client *redis.Client) outbound.RateLimiterPort {
	return &rateLimiter{client: client, now: time.Now}
}

func (r *rateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return r.AllowN(ctx, key, 1, limit, window)
}

func (r *rateLimiter) AllowN(ctx context.Context, key string, n int, limit int, window time.Duration) (bool, error) {
	if n <= 0 {
		return true, nil
	}
	now := r.now().UnixNano()
	res, err := slidingWindowScript.Run(ctx, r.client, []string{rateLimitKeyPrefix + key},
		now, now-window.Nanoseconds(), n, limit, window.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("rate limit script: %w", err)
	}
	return res == 1, nil
}

func (r *rateLimiter) GetRemaining(ctx context.Context, key string, limit int, window time.Duration) (int, error) {
	fullKey := rateLimitKeyPrefix + key
	windowStart := r.now().UnixNano() - window.Nanoseconds()

	count, err := r.client.ZCount(ctx, fullKey, fmt.Sprintf("(%d", windowStart), "+inf").Result()
	if err != nil {
		return 0, err
	}
	return max(limit-int(count), 0), nil
}

// Compile-time check
var _ outbound.RateLimiterPort = (*rateLimiter)(nil)
