package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter provides fixed-window request counting backed by Redis.
// Key format: ratelimit:<client>:<window_index>
type Limiter struct {
	client *redis.Client
	window time.Duration
}

// NewLimiter creates a Limiter counting hits per window.
func NewLimiter(client *redis.Client, window time.Duration) *Limiter {
	if window <= 0 {
		window = time.Minute
	}
	return &Limiter{client: client, window: window}
}

// Hit records one request for the given client key and returns the total
// number of hits in the current window, including this one.
func (l *Limiter) Hit(ctx context.Context, clientKey string) (int64, error) {
	key := l.key(clientKey, time.Now())

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("rate limit hit: %w", err)
	}
	return incr.Val(), nil
}

func (l *Limiter) key(clientKey string, now time.Time) string {
	return fmt.Sprintf("ratelimit:%s:%d", clientKey, now.UnixNano()/int64(l.window))
}
