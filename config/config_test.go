package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CATALOG_UPSTREAM_URL", "CATALOG_RESTAURANTS_PATH", "CATALOG_UPSTREAM_TIMEOUT",
		"CATALOG_RATING_THRESHOLD", "CATALOG_RATING_MODE", "REDIS_HOST", "CACHE_TTL",
		"KAFKA_BROKER", "KAFKA_TOPIC", "DB_HOST", "SESSION_IDLE_TTL", "MAX_SESSIONS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 4.5, cfg.Filter.RatingThreshold)
	assert.Equal(t, "view", cfg.Filter.RatingMode)
	assert.Equal(t, "data.cards[1].card.card.gridElements.infoWithStyle.restaurants", cfg.Upstream.RestaurantsPath)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Kafka.Enabled())
	assert.False(t, cfg.Postgres.Enabled())
	assert.Equal(t, 15*time.Minute, cfg.Server.SessionIdleTTL)
	assert.Equal(t, 1000, cfg.Server.MaxSessions)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
upstream:
  url: http://upstream.local/list
  timeout: 3s
filter:
  rating_threshold: 4.0
  rating_mode: destructive
redis:
  host: cache.local
  cache_ttl: 1m
`), 0o644))

	clearEnv(t)
	t.Setenv("CATALOG_UPSTREAM_URL", "http://override.local/list")
	t.Setenv("KAFKA_BROKER", "kafka:9092")
	t.Setenv("DB_HOST", "db.local")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://override.local/list", cfg.Upstream.URL)
	assert.Equal(t, 3*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, 4.0, cfg.Filter.RatingThreshold)
	assert.Equal(t, "destructive", cfg.Filter.RatingMode)
	assert.Equal(t, time.Minute, cfg.Redis.CacheTTL)
	assert.True(t, cfg.Redis.Enabled())
	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, "catalog-filters", cfg.Kafka.Topic)
	assert.True(t, cfg.Postgres.Enabled())
	assert.Contains(t, cfg.Postgres.DSN(), "host=db.local")
}

func TestLoad_InvalidEnv(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "threshold", key: "CATALOG_RATING_THRESHOLD", val: "high"},
		{name: "timeout", key: "CATALOG_UPSTREAM_TIMEOUT", val: "soon"},
		{name: "ttl", key: "CACHE_TTL", val: "forever"},
		{name: "session_ttl", key: "SESSION_IDLE_TTL", val: "0s"},
		{name: "max_sessions", key: "MAX_SESSIONS", val: "many"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(testCase.key, testCase.val)
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("filter: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
