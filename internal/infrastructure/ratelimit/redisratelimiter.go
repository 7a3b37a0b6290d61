package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"boxmas/internal/shared/biztime"
)

// RedisRateLimiter is a fixed-window counter shared by every instance through Redis.
type RedisRateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
	now    biztime.Clock
}

func NewRedisRateLimiter(client *redis.Client, prefix string, limit int, window time.Duration) *RedisRateLimiter {
	if window < time.Second {
		window = time.Second
	}
	return &RedisRateLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: prefix,
		now:    biztime.NowUTC,
	}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := l.getKey(key)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate counter: %w", err)
	}

	// First hit in this window owns the TTL
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window+time.Second).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate counter ttl: %w", err)
		}
	}

	return count <= int64(l.limit), nil
}

func (l *RedisRateLimiter) getKey(key string) string {
	bucket := l.now().Unix() / int64(l.window.Seconds())
	return fmt.Sprintf("ratelimit:%s:%s:%d", l.prefix, key, bucket)
}
