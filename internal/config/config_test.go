package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "taskflow-erp", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, time.Hour, cfg.Worker.CleanupInterval())
	assert.Equal(t, 5*time.Minute, cfg.Worker.AnalyticsInterval())
	assert.Equal(t, 10*time.Minute, cfg.Worker.SkillCacheTTL())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("WORKER_CLEANUP_INTERVAL_MINUTES", "15")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "false")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, 15*time.Minute, cfg.Worker.CleanupInterval())
	assert.False(t, cfg.Postgres.RunMigrations)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoadInvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	require.Error(t, err)
}

func TestIntervalFallbacksOnNonPositive(t *testing.T) {
	w := WorkerConfig{}
	assert.Equal(t, time.Hour, w.CleanupInterval())

	a := AppConfig{RequestTimeoutSeconds: 0}
	assert.Equal(t, time.Duration(0), a.RequestTimeout())
}
