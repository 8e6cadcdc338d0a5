// Package cache is a small JSON cache over redis. A nil *Cache, or one built
// without an address, is a valid no-op cache: reads miss and writes succeed.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"chatarra-market/internal/config"
	"chatarra-market/internal/pkg/metrics"
)

// Cache wraps a redis client
type Cache struct {
	rdb *redis.Client
}

// New connects to redis. An empty Addr returns a disabled cache.
func New(cfg config.RedisConfig) *Cache {
	if cfg.Addr == "" {
		log.Info().Msg("redis disabled: REDIS_ADDR not set")
		return &Cache{}
	}
	return NewWithClient(redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}))
}

// NewWithClient wraps an existing client
func NewWithClient(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

// Enabled reports whether a redis client is configured
func (c *Cache) Enabled() bool {
	return c != nil && c.rdb != nil
}

// GetJSON loads key into dest. It reports false on a miss or any error.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if !c.Enabled() {
		return false
	}

	val, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		}
		metrics.CacheMisses.WithLabelValues("redis").Inc()
		return false
	}
	if err := json.Unmarshal(val, dest); err != nil {
		metrics.CacheMisses.WithLabelValues("redis").Inc()
		return false
	}

	metrics.CacheHits.WithLabelValues("redis").Inc()
	return true
}

// SetJSON stores value under key for ttl
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !c.Enabled() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, data, ttl).Err()
}

// Set stores a raw string under key for ttl
func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

// Exists reports whether key is present
func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	n, err := c.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete removes keys
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if !c.Enabled() || len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// Ping checks the connection. A disabled cache is always healthy.
func (c *Cache) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}

// Close closes the underlying client
func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Close()
}
