package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, BackendPostgres, cfg.StoreBackend)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, LockConfig{
		ResourceID:  "memory_lock",
		Timeout:     30 * time.Second,
		MaxAttempts: 10,
		RetryDelay:  time.Second,
	}, cfg.Lock)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("REDIS_URL", "redis://cache:6379/1")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOCK_RESOURCE_ID", "team_graph")
	t.Setenv("LOCK_TIMEOUT", "5s")
	t.Setenv("LOCK_MAX_ATTEMPTS", "3")
	t.Setenv("LOCK_RETRY_DELAY", "250ms")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.StoreBackend)
	assert.Equal(t, "redis://cache:6379/1", cfg.RedisURL)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "team_graph", cfg.Lock.ResourceID)
	assert.Equal(t, 5*time.Second, cfg.Lock.Timeout)
	assert.Equal(t, 3, cfg.Lock.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Lock.RetryDelay)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown backend", env: map[string]string{"STORE_BACKEND": "sqlite"}},
		{name: "zero attempts", env: map[string]string{"LOCK_MAX_ATTEMPTS": "0"}},
		{name: "zero timeout", env: map[string]string{"LOCK_TIMEOUT": "0s"}},
		{name: "timeout without unit", env: map[string]string{"LOCK_TIMEOUT": "30000"}},
		{name: "retry delay without unit", env: map[string]string{"LOCK_RETRY_DELAY": "1000"}},
		{name: "sub millisecond timeout", env: map[string]string{"LOCK_TIMEOUT": "30us"}},
		{name: "bad gin mode", env: map[string]string{"GIN_MODE": "loud"}},
		{name: "bad broker", env: map[string]string{"KAFKA_BROKERS": "not a broker"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadConfig()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoadConfig_ZeroRetryDelay(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LOCK_RETRY_DELAY", "0")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Zero(t, cfg.Lock.RetryDelay)
}

func TestLockConfig_ShutdownGrace(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)
	// 10 attempts 1s apart, then up to 30s of work under the lease
	assert.Equal(t, 40*time.Second, cfg.Lock.ShutdownGrace())

	t.Setenv("LOCK_MAX_ATTEMPTS", "3")
	t.Setenv("LOCK_RETRY_DELAY", "500ms")
	t.Setenv("LOCK_TIMEOUT", "5s")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 6500*time.Millisecond, cfg.Lock.ShutdownGrace())
}

func TestGetLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, getLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, getLogLevel("warn"))
	assert.Equal(t, slog.LevelError, getLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, getLogLevel("verbose"))
}
