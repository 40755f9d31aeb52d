package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/corner-alert-service/internal/models"
)

const snapshotKey = "dashboard:snapshot"

// RedisCache caches the dashboard snapshot in Redis. The short TTL bounds how
// often the dashboard path forces a fresh projection of tracker state.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// RedisCacheConfig holds Redis cache configuration
type RedisCacheConfig struct {
	Addr     string // e.g., "localhost:6379"
	Password string
	DB       int
	TTL      time.Duration // e.g., 60 * time.Second
}

// NewRedisCache creates a new Redis cache
func NewRedisCache(config RedisCacheConfig, logger zerolog.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	return &RedisCache{
		client: client,
		ttl:    config.TTL,
		logger: logger.With().Str("component", "redis_cache").Logger(),
	}
}

// SetSnapshot caches the dashboard snapshot with the configured TTL.
func (c *RedisCache) SetSnapshot(ctx context.Context, snapshot *models.DashboardSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := c.client.Set(ctx, snapshotKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in Redis: %w", err)
	}

	c.logger.Debug().
		Int("matches", len(snapshot.Matches)).
		Dur("ttl", c.ttl).
		Msg("cached dashboard snapshot")

	return nil
}

// GetSnapshot retrieves the cached dashboard snapshot. The bool reports
// whether a fresh snapshot was present.
func (c *RedisCache) GetSnapshot(ctx context.Context) (*models.DashboardSnapshot, bool, error) {
	data, err := c.client.Get(ctx, snapshotKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("failed to get from Redis: %w", err)
	}

	var snapshot models.DashboardSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &snapshot, true, nil
}

// Invalidate drops the cached snapshot, forcing the next read to rebuild.
func (c *RedisCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, snapshotKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate snapshot: %w", err)
	}
	return nil
}

// Ping checks Redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
