package cache

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sooqly/backend/internal/domain/tracking"
	"github.com/sooqly/backend/internal/infrastructure/config"
)

// ErrorThrottleFactory creates duplicate-error throttles based on configuration
type ErrorThrottleFactory struct {
	redisConfig   config.RedisConfig
	ttl           time.Duration
	logger        *zap.Logger
	allowFallback bool
}

// ErrorThrottleFactoryOption is a functional option for configuring the factory
type ErrorThrottleFactoryOption func(*ErrorThrottleFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) ErrorThrottleFactoryOption {
	return func(f *ErrorThrottleFactory) {
		f.logger = logger
	}
}

// WithInProcessFallback controls whether to fall back to the in-process guard
// arena when Redis is unavailable. Default is true (allow fallback).
func WithInProcessFallback(allow bool) ErrorThrottleFactoryOption {
	return func(f *ErrorThrottleFactory) {
		f.allowFallback = allow
	}
}

// NewErrorThrottleFactory creates a new factory
func NewErrorThrottleFactory(cfg config.RedisConfig, ttl time.Duration, opts ...ErrorThrottleFactoryOption) *ErrorThrottleFactory {
	f := &ErrorThrottleFactory{
		redisConfig:   cfg,
		ttl:           ttl,
		logger:        zap.NewNop(),
		allowFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateThrottle creates an error throttle based on whether Redis is enabled
// and reachable. When Redis is disabled or unreachable (and fallback is
// allowed) the given guard arena doubles as a single-instance throttle.
func (f *ErrorThrottleFactory) CreateThrottle(arena *tracking.GuardArena) (tracking.ErrorThrottle, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("using in-process error throttle")
		return arena, nil
	}

	throttle, err := NewRedisErrorThrottle(f.redisConfig, f.ttl)
	if err == nil {
		f.logger.Info("using Redis error throttle")
		return throttle, nil
	}

	if !f.allowFallback {
		return nil, fmt.Errorf("Redis required for error throttle but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-process error throttle. "+
		"Duplicate-error suppression will not be shared across instances.",
		zap.Error(err),
	)
	return arena, nil
}
