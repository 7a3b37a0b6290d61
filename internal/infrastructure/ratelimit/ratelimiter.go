package ratelimit

import "context"

// RateLimiter decides whether one more request under key fits the budget.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
