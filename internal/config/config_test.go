package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAPIConfigDefaults(t *testing.T) {
	cfg, err := LoadAPIConfig("", t.TempDir())
	require.NoError(t, err)

	assert.False(t, cfg.Debug)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "https://v3.football.api-sports.io", cfg.Origin.BaseURL)
	assert.Equal(t, "https://media.api-sports.io/football", cfg.Origin.MediaBaseURL)
	assert.Equal(t, 30*time.Second, cfg.Origin.Timeout)
	assert.Equal(t, "sports-assets", cfg.Storage.Bucket)
	assert.Equal(t, 4096, cfg.SpeedCache.Size)
	assert.Equal(t, 30*time.Second, cfg.SpeedCache.TTL)
	assert.Equal(t, 5*time.Minute, cfg.Assets.MaxPendingAge)
	assert.Equal(t, time.Hour, cfg.Assets.ErrorCooldown)
	assert.Equal(t, 300*time.Millisecond, cfg.Assets.PendingWait)
	assert.Equal(t, 720*time.Hour, cfg.Assets.RefreshTTL)
	assert.Equal(t, 5, cfg.Assets.BatchWidth)
}

func TestLoadAPIConfigEnvOverrides(t *testing.T) {
	t.Setenv("SPORTSCACHE_SERVER_PORT", "9090")
	t.Setenv("SPORTSCACHE_DEBUG", "true")
	t.Setenv("SPORTSCACHE_ORIGIN_API_KEY", "test-key")
	t.Setenv("SPORTSCACHE_DATABASE_HOST", "db.internal")
	t.Setenv("SPORTSCACHE_ASSETS_ERROR_COOLDOWN", "30m")

	cfg, err := LoadAPIConfig("", t.TempDir())
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "test-key", cfg.Origin.APIKey)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 30*time.Minute, cfg.Assets.ErrorCooldown)
}

func TestLoadSweeperConfigRequiresDatabase(t *testing.T) {
	_, err := LoadSweeperConfig("", t.TempDir())
	assert.Error(t, err)
}

func TestLoadSweeperConfigDefaults(t *testing.T) {
	t.Setenv("SPORTSCACHE_DATABASE_HOST", "db.internal")
	t.Setenv("SPORTSCACHE_DATABASE_DBNAME", "sportscache")

	cfg, err := LoadSweeperConfig("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "sportscache", cfg.Database.DBName)
	assert.Equal(t, time.Hour, cfg.Sweep.Interval)
	assert.Equal(t, 100, cfg.Sweep.BatchSize)
	assert.Equal(t, 5, cfg.Database.MaxOpenConns)
	assert.Equal(t, 720*time.Hour, cfg.Assets.RefreshTTL)
}

func TestDatabaseDSN(t *testing.T) {
	db := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "secret",
		DBName:   "sportscache",
		SSLMode:  "disable",
	}
	assert.Equal(t, "host=localhost port=5432 user=postgres password=secret dbname=sportscache sslmode=disable", db.DSN())
}
