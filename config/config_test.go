package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SESSION_TTL", "not-a-duration")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("STORAGE_DRIVER", "SQLite")
	t.Setenv("TOKEN_TTL", "90m")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("SEED_DEMO_DATA", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, StorageSQLite, cfg.StorageDriver)
	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.False(t, cfg.SeedDemoData)
}

func TestLoggerConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FILENAME", "")
	t.Setenv("LOG_CONSOLE", "false")
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("SESSION_BACKEND", "redis")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	lc := cfg.LoggerConfig()
	assert.Equal(t, "WARN", lc.Level)
	assert.Empty(t, lc.Filename)
	assert.False(t, lc.Console)
	assert.Equal(t, map[string]string{"service": "laboratorio", "storage": "postgres", "sessions": "redis"}, lc.Fields)
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			GinMode:        "release",
			StorageDriver:  StorageMemory,
			SessionBackend: SessionMemory,
			JWTSecret:      "secret",
			TokenTTL:       time.Hour,
			SessionTTL:     time.Hour,
		}
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		expectedErr string
	}{
		{name: "Valid", mutate: func(*Config) {}},
		{name: "Unknown driver", mutate: func(c *Config) { c.StorageDriver = "mysql" }, expectedErr: "unknown STORAGE_DRIVER"},
		{name: "Unknown session backend", mutate: func(c *Config) { c.SessionBackend = "file" }, expectedErr: "unknown SESSION_BACKEND"},
		{name: "Missing secret in release", mutate: func(c *Config) { c.JWTSecret = "" }, expectedErr: "JWT_SECRET is required"},
		{name: "Missing secret in debug", mutate: func(c *Config) { c.JWTSecret = ""; c.GinMode = "debug" }},
		{name: "Zero TTL", mutate: func(c *Config) { c.SessionTTL = 0 }, expectedErr: "must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.expectedErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.expectedErr)
		})
	}
}
