// Package config loads server settings from the environment
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/rpg-tables/internal/errors"
)

// Config holds server settings
type Config struct {
	Port      int    `env:"RPG_TABLES_PORT" envDefault:"50051"`
	RedisAddr string `env:"RPG_TABLES_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisTLS  bool   `env:"RPG_TABLES_REDIS_TLS" envDefault:"false"`

	// RedisIdleTimeout closes pooled connections idle for longer
	RedisIdleTimeout time.Duration `env:"RPG_TABLES_REDIS_IDLE_TIMEOUT" envDefault:"5m"`

	// SessionTTL applies to roll sessions created without an explicit TTL
	SessionTTL time.Duration `env:"RPG_TABLES_SESSION_TTL" envDefault:"15m"`

	// DiceSeed makes rolls reproducible. Zero draws a random seed at startup.
	DiceSeed int64 `env:"RPG_TABLES_DICE_SEED" envDefault:"0"`

	// TableStore selects where lookup tables live: "redis" or "memory"
	TableStore string `env:"RPG_TABLES_TABLE_STORE" envDefault:"redis"`

	LogLevel string `env:"RPG_TABLES_LOG_LEVEL" envDefault:"info"`
}

// Table store backends
const (
	TableStoreRedis  = "redis"
	TableStoreMemory = "memory"
)

// Load parses the environment into a validated Config
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "parse env")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges and names
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Port < 1 || c.Port > 65535 {
		vb.Fieldf("port", "must be between 1 and 65535, got %d", c.Port)
	}
	errors.ValidateRequired("redis_addr", c.RedisAddr, vb)
	if c.RedisIdleTimeout < 0 {
		vb.Field("redis_idle_timeout", "must not be negative")
	}
	if c.SessionTTL <= 0 {
		vb.Field("session_ttl", "must be positive")
	}
	switch c.TableStore {
	case TableStoreRedis, TableStoreMemory:
	default:
		vb.Fieldf("table_store", "must be %q or %q, got %q", TableStoreRedis, TableStoreMemory, c.TableStore)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		vb.Field("log_level", errors.GetMessage(err))
	}

	return vb.Build()
}

// SlogLevel returns the configured log level. Call Validate first.
func (c *Config) SlogLevel() slog.Level {
	level, _ := ParseLevel(c.LogLevel)
	return level
}

// ParseLevel maps debug, info, warn and error to slog levels
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, errors.InvalidArgumentf("unknown log level %q", s)
	}
	return level, nil
}
