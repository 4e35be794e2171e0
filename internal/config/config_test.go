package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-api-key"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GEOCODE_API_KEY", testAPIKey)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, testAPIKey, cfg.GeocodeAPIKey)
	assert.Equal(t, "https://maps.googleapis.com/maps/api/geocode/json", cfg.GeocodeBaseURL)
	assert.Equal(t, 5*time.Second, cfg.GeocodeTimeout)
	assert.Equal(t, 1000, cfg.GeocodeCacheSize)
	assert.InDelta(t, 10.0, cfg.GeocodeRateLimit, 1e-9)
	assert.Empty(t, cfg.DatabaseURL)
	assert.True(t, cfg.DatabaseMigrate)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "dealer-leads", cfg.KafkaLeadsTopic)
	assert.InDelta(t, 100.0, cfg.SearchMaxRadius, 1e-9)
	assert.Equal(t, 20, cfg.SearchMaxLimit)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("GEOCODE_API_KEY", testAPIKey)
	t.Setenv("GEOCODE_BASE_URL", "http://localhost:9999/geocode")
	t.Setenv("GEOCODE_TIMEOUT", "2s")
	t.Setenv("GEOCODE_CACHE_SIZE", "500")
	t.Setenv("GEOCODE_RATE_LIMIT", "2.5")
	t.Setenv("DATABASE_URL", "postgres://locator@localhost:5432/locator")
	t.Setenv("DATABASE_MIGRATE", "false")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_LEADS_TOPIC", "custom-leads")
	t.Setenv("SEARCH_MAX_RADIUS", "50")
	t.Setenv("SEARCH_MAX_LIMIT", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "http://localhost:9999/geocode", cfg.GeocodeBaseURL)
	assert.Equal(t, 2*time.Second, cfg.GeocodeTimeout)
	assert.Equal(t, 500, cfg.GeocodeCacheSize)
	assert.InDelta(t, 2.5, cfg.GeocodeRateLimit, 1e-9)
	assert.Equal(t, "postgres://locator@localhost:5432/locator", cfg.DatabaseURL)
	assert.False(t, cfg.DatabaseMigrate)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-leads", cfg.KafkaLeadsTopic)
	assert.InDelta(t, 50.0, cfg.SearchMaxRadius, 1e-9)
	assert.Equal(t, 5, cfg.SearchMaxLimit)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEOCODE_API_KEY")
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("GEOCODE_API_KEY", testAPIKey)
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidGeocodeTimeout(t *testing.T) {
	for _, v := range []string{"bad", "0s", "-1s"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("GEOCODE_API_KEY", testAPIKey)
			t.Setenv("GEOCODE_TIMEOUT", v)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "GEOCODE_TIMEOUT")
		})
	}
}

func TestLoad_InvalidRateLimit(t *testing.T) {
	t.Setenv("GEOCODE_API_KEY", testAPIKey)
	t.Setenv("GEOCODE_RATE_LIMIT", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEOCODE_RATE_LIMIT")
}

func TestLoad_InvalidCacheSizeFallsBackToDefault(t *testing.T) {
	t.Setenv("GEOCODE_API_KEY", testAPIKey)
	t.Setenv("GEOCODE_CACHE_SIZE", "-5")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.GeocodeCacheSize)
}

func TestLoad_InvalidSearchBounds(t *testing.T) {
	t.Run("radius", func(t *testing.T) {
		t.Setenv("GEOCODE_API_KEY", testAPIKey)
		t.Setenv("SEARCH_MAX_RADIUS", "-1")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SEARCH_MAX_RADIUS")
	})
	t.Run("limit", func(t *testing.T) {
		t.Setenv("GEOCODE_API_KEY", testAPIKey)
		t.Setenv("SEARCH_MAX_LIMIT", "many")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SEARCH_MAX_LIMIT")
	})
}

func TestLoad_InvalidMigrateFlag(t *testing.T) {
	t.Setenv("GEOCODE_API_KEY", testAPIKey)
	t.Setenv("DATABASE_MIGRATE", "sometimes")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_MIGRATE")
}
