package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sooqly-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "/v1/shipments/track", cfg.Carrier.TrackingPath)
	assert.Equal(t, 15, cfg.Carrier.TimeoutSeconds)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NotZero(t, cfg.Tracking.RecheckDelay)
	assert.NotZero(t, cfg.Tracking.ErrorThrottleTTL)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SOOQLY_DATABASE_HOST", "db.internal")
	t.Setenv("SOOQLY_CARRIER_API_KEY", "test-key")
	t.Setenv("SOOQLY_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "test-key", cfg.Carrier.APIKey)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ProductionRequiresCarrierCredentials(t *testing.T) {
	t.Setenv("SOOQLY_APP_ENV", "production")
	t.Setenv("SOOQLY_DATABASE_PASSWORD", "secret")
	t.Setenv("SOOQLY_DATABASE_SSLMODE", "require")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carrier.api_base_url")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := &DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "sooqly",
		Password: "p@ss/word",
		DBName:   "orders",
		SSLMode:  "disable",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "sslmode=disable")
	assert.NotContains(t, dsn, "p@ss/word", "password must be URL-escaped")
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := &RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", cfg.Addr())
}
