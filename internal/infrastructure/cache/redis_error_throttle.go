package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/sooqly/backend/internal/domain/tracking"
	"github.com/sooqly/backend/internal/infrastructure/config"
)

const defaultThrottleKeyPrefix = "tracking:lasterror:"

// RedisErrorThrottle implements tracking.ErrorThrottle using Redis.
// This is suitable for distributed deployments where multiple instances
// serve the same order and must agree on the last surfaced error message.
type RedisErrorThrottle struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisErrorThrottle creates a Redis-backed duplicate-error throttle
func NewRedisErrorThrottle(cfg config.RedisConfig, ttl time.Duration) (*RedisErrorThrottle, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisErrorThrottle{
		client:    client,
		keyPrefix: defaultThrottleKeyPrefix,
		ttl:       ttl,
	}, nil
}

// NewRedisErrorThrottleWithClient creates a throttle with an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisErrorThrottleWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisErrorThrottle {
	if keyPrefix == "" {
		keyPrefix = defaultThrottleKeyPrefix
	}
	return &RedisErrorThrottle{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

// ShouldNotify swaps in the new message and compares it against the previous
// one in a single atomic SET ... GET, so two instances racing on the same
// order cannot both notify for the same message.
func (t *RedisErrorThrottle) ShouldNotify(ctx context.Context, orderID uuid.UUID, message string) (bool, error) {
	key := t.keyPrefix + orderID.String()

	previous, err := t.client.SetArgs(ctx, key, message, redis.SetArgs{
		Get: true,
		TTL: t.ttl,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// No previous message for this order
			return true, nil
		}
		return false, fmt.Errorf("failed to swap last error message: %w", err)
	}

	return previous != message, nil
}

// Forget drops the remembered message so the next error notifies again
func (t *RedisErrorThrottle) Forget(ctx context.Context, orderID uuid.UUID) error {
	return t.client.Del(ctx, t.keyPrefix+orderID.String()).Err()
}

// Close closes the Redis client
func (t *RedisErrorThrottle) Close() error {
	return t.client.Close()
}

// Ensure RedisErrorThrottle implements ErrorThrottle
var _ tracking.ErrorThrottle = (*RedisErrorThrottle)(nil)
