// Package cache is the response cache in front of the home feed. Entries
// expire after a fixed TTL; there is no explicit invalidation, so a new
// post may be invisible on the home page for up to one TTL.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// PageCache stores rendered response bodies in Redis. If Redis is
// unreachable at startup the cache runs disabled and every lookup is a
// miss, so the service stays up without it.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.SugaredLogger
}

// NewPageCache connects to Redis at addr. A failed ping disables the
// cache instead of failing startup.
func NewPageCache(addr string, ttl time.Duration, logger *zap.SugaredLogger) *PageCache {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warnw("redis unavailable, page cache disabled", "addr", addr, "error", err)
		return &PageCache{ttl: ttl, logger: logger}
	}
	return &PageCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached body for key, if any.
func (c *PageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c.client == nil {
		return nil, false
	}
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warnw("page cache get failed", "key", key, "error", err)
		}
		return nil, false
	}
	return val, true
}

// Set stores body under key for the cache TTL. Failures are logged and
// otherwise ignored.
func (c *PageCache) Set(ctx context.Context, key string, body []byte) {
	if c.client == nil {
		return
	}
	if err := c.client.Set(ctx, key, body, c.ttl).Err(); err != nil {
		c.logger.Warnw("page cache set failed", "key", key, "error", err)
	}
}

// Close releases the Redis connection.
func (c *PageCache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
