package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sooqly/backend/internal/domain/tracking"
	"github.com/sooqly/backend/internal/infrastructure/config"
)

func TestErrorThrottleFactory_DisabledRedisUsesArena(t *testing.T) {
	arena := tracking.NewGuardArena()
	factory := NewErrorThrottleFactory(config.RedisConfig{Enabled: false}, time.Hour)

	throttle, err := factory.CreateThrottle(arena)
	require.NoError(t, err)
	assert.Same(t, arena, throttle)
}

func TestErrorThrottleFactory_UnreachableRedisFallsBack(t *testing.T) {
	arena := tracking.NewGuardArena()
	cfg := config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}
	factory := NewErrorThrottleFactory(cfg, time.Hour)

	throttle, err := factory.CreateThrottle(arena)
	require.NoError(t, err)
	assert.Same(t, arena, throttle)
}

func TestErrorThrottleFactory_NoFallbackFails(t *testing.T) {
	arena := tracking.NewGuardArena()
	cfg := config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}
	factory := NewErrorThrottleFactory(cfg, time.Hour, WithInProcessFallback(false))

	_, err := factory.CreateThrottle(arena)
	assert.Error(t, err)
}
