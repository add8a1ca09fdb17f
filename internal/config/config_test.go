package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-tables/internal/config"
	"github.com/KirkDiggler/rpg-tables/internal/errors"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 50051, cfg.Port)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.False(t, cfg.RedisTLS)
	assert.Equal(t, 5*time.Minute, cfg.RedisIdleTimeout)
	assert.Equal(t, 15*time.Minute, cfg.SessionTTL)
	assert.Zero(t, cfg.DiceSeed)
	assert.Equal(t, config.TableStoreRedis, cfg.TableStore)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("RPG_TABLES_PORT", "6000")
	t.Setenv("RPG_TABLES_REDIS_ADDR", "redis:6379")
	t.Setenv("RPG_TABLES_REDIS_TLS", "true")
	t.Setenv("RPG_TABLES_REDIS_IDLE_TIMEOUT", "30s")
	t.Setenv("RPG_TABLES_SESSION_TTL", "1h")
	t.Setenv("RPG_TABLES_DICE_SEED", "1234")
	t.Setenv("RPG_TABLES_LOG_LEVEL", "DEBUG")
	t.Setenv("RPG_TABLES_TABLE_STORE", "memory")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 6000, cfg.Port)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.True(t, cfg.RedisTLS)
	assert.Equal(t, 30*time.Second, cfg.RedisIdleTimeout)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, int64(1234), cfg.DiceSeed)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, config.TableStoreMemory, cfg.TableStore)
}

func TestLoad_ParseError(t *testing.T) {
	t.Setenv("RPG_TABLES_PORT", "not-an-int")

	_, err := config.Load()
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "parse env")
}

func TestLoad_ValidationError(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{name: "port out of range", key: "RPG_TABLES_PORT", value: "70000"},
		{name: "negative idle timeout", key: "RPG_TABLES_REDIS_IDLE_TIMEOUT", value: "-1s"},
		{name: "zero ttl", key: "RPG_TABLES_SESSION_TTL", value: "0s"},
		{name: "unknown table store", key: "RPG_TABLES_TABLE_STORE", value: "disk"},
		{name: "unknown level", key: "RPG_TABLES_LOG_LEVEL", value: "chatty"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)

			_, err := config.Load()
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
		})
	}
}
