package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "ratelimit:"

// RateLimiter allows requestsPerMinute+burst attempts per key in each
// wall-clock minute. Every window has its own counter key that expires with it.
type RateLimiter struct {
	client *Client
	limit  int64
	window time.Duration
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(client *Client, requestsPerMinute, burst int) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  int64(requestsPerMinute + burst),
		window: time.Minute,
	}
}

// Allow records one attempt under key and reports whether it fits the current
// window, how many attempts remain and when the window closes.
func (r *RateLimiter) Allow(ctx context.Context, key string) (bool, int, time.Time, error) {
	start := time.Now().Truncate(r.window)
	reset := start.Add(r.window)
	windowKey := rateLimitPrefix + key + ":" + strconv.FormatInt(start.Unix(), 10)

	var incr *redis.IntCmd
	_, err := r.client.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, windowKey)
		pipe.ExpireAt(ctx, windowKey, reset)
		return nil
	})
	if err != nil {
		return false, 0, time.Time{}, fmt.Errorf("failed to count attempt: %w", err)
	}

	count := incr.Val()
	remaining := r.limit - count
	if remaining < 0 {
		remaining = 0
	}

	return count <= r.limit, int(remaining), reset, nil
}
