package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// Redis-backed implementation of the PlanCache port. Caches serialized plan
// responses keyed by request digest. Terminal artifacts only; shortest-path
// tables are task-scoped and never stored.
type RedisPlanCache struct {
	rdb *redis.Client
}

func NewRedisPlanCache(rdb *redis.Client) *RedisPlanCache {
	return &RedisPlanCache{rdb: rdb}
}

// NewRedisPlanCacheFromURL connects using a redis:// URL.
func NewRedisPlanCacheFromURL(url string) (*RedisPlanCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis plan cache: parse url: %w", err)
	}
	return &RedisPlanCache{rdb: redis.NewClient(opt)}, nil
}

func (c *RedisPlanCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, errors.New("redis plan cache: key must not be empty")
	}

	payload, err := c.rdb.Get(ctx, c.name(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis plan cache: get %q: %w", key, err)
	}
	return payload, true, nil
}

func (c *RedisPlanCache) Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if key == "" {
		return errors.New("redis plan cache: key must not be empty")
	}

	if err := c.rdb.Set(ctx, c.name(key), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis plan cache: set %q: %w", key, err)
	}
	return nil
}

func (c *RedisPlanCache) name(key string) string { return "plan:" + key }
