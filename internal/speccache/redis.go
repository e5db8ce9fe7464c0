package speccache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "xplat-exec-core:speccache:"

// RedisOption configures a RedisCache.
type RedisOption func(*redisConfig)

type redisConfig struct {
	keyPrefix string
}

// WithKeyPrefix overrides the default Redis key prefix.
func WithKeyPrefix(prefix string) RedisOption {
	return func(c *redisConfig) { c.keyPrefix = prefix }
}

// RedisCache is an opt-in Cache backed by a Redis client. It is never
// constructed by default -- a caller wires it in explicitly via a
// scheduler driver option (see Design Notes §9, "commented-out cache").
type RedisCache struct {
	client *redis.Client
	cfg    redisConfig
}

// NewRedisCache wraps client as a Cache.
func NewRedisCache(client *redis.Client, opts ...RedisOption) *RedisCache {
	cfg := redisConfig{keyPrefix: defaultKeyPrefix}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &RedisCache{client: client, cfg: cfg}
}

func (c *RedisCache) redisKey(key string) string {
	return c.cfg.keyPrefix + key
}

// Get returns the cached raw specification string for key, if present.
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	raw, err := c.client.Get(ctx, c.redisKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("speccache: reading %q from redis: %w", key, err)
	}
	return raw, true, nil
}

// Set stores value under key with the given TTL (zero means no expiry),
// overwriting any previous value.
func (c *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.redisKey(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("speccache: writing %q to redis: %w", key, err)
	}
	return nil
}
