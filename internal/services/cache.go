package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/circleops/salesops-backend/internal/config"
)

const (
	resourceSummaryKey      = "salesops:summary:resources"
	financeSummaryKeyPrefix = "salesops:summary:finance:"
)

func financeSummaryKey(circle string) string {
	if circle == "" {
		return financeSummaryKeyPrefix + "ALL"
	}
	return financeSummaryKeyPrefix + circle
}

// SummaryCache is a read-through cache for aggregate views. The database
// stays authoritative, so cache failures degrade to misses.
type SummaryCache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{})
	Delete(ctx context.Context, keys ...string)
}

// NewSummaryCache returns a Redis-backed cache when an address is configured
// and a no-op cache otherwise
func NewSummaryCache(cfg config.RedisConfig, logger *logrus.Logger) SummaryCache {
	if cfg.Addr == "" {
		return NoopCache{}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return NewRedisCache(client, cfg.TTL, logger)
}

// NoopCache never stores anything
type NoopCache struct{}

// Get always misses
func (NoopCache) Get(context.Context, string, interface{}) bool { return false }

// Set discards the value
func (NoopCache) Set(context.Context, string, interface{}) {}

// Delete does nothing
func (NoopCache) Delete(context.Context, ...string) {}

// RedisCache stores JSON-encoded summaries in Redis
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

// NewRedisCache wraps a go-redis client
func NewRedisCache(client *redis.Client, ttl time.Duration, logger *logrus.Logger) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, logger: logger}
}

// Get decodes key into dest and reports whether it was a hit
func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("summary cache read failed")
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("summary cache entry is corrupt")
		return false
	}
	return true
}

// Set stores value under key with the configured TTL
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("summary cache encode failed")
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("summary cache write failed")
	}
}

// Delete drops keys
func (c *RedisCache) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.WithError(err).WithField("keys", keys).Warn("summary cache invalidation failed")
	}
}

// Ping checks the Redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the Redis connection pool
func (c *RedisCache) Close() error {
	return c.client.Close()
}
