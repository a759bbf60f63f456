package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "http://localhost:8001", cfg.CatalogBaseURL)
	assert.Equal(t, "localhost", cfg.RedisHost)
	assert.Equal(t, 6379, cfg.RedisPort)
	assert.Equal(t, 300, cfg.RelatedCacheTTL)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.False(t, cfg.OTELEnabled)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("STOREFRONT_HTTP_PORT", "9090")
	t.Setenv("CATALOG_BASE_URL", "http://catalog:8001")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("RELATED_CACHE_TTL_SECONDS", "60")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://shop.example.com,https://admin.example.com")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, "http://catalog:8001", cfg.CatalogBaseURL)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 60, cfg.RelatedCacheTTL)
	assert.Equal(t, []string{"https://shop.example.com", "https://admin.example.com"}, cfg.CORSAllowedOrigins)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("STOREFRONT_HTTP_PORT", "99999")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid HTTP port")
}

func TestLoad_InvalidCatalogURL(t *testing.T) {
	t.Setenv("CATALOG_BASE_URL", "not a url")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "CATALOG_BASE_URL")
}

func TestLoad_InvalidSampleRate(t *testing.T) {
	t.Setenv("OTEL_SAMPLE_RATE", "1.5")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "OTEL_SAMPLE_RATE")
}

func TestLoad_NegativeCacheTTL(t *testing.T) {
	t.Setenv("RELATED_CACHE_TTL_SECONDS", "-1")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "RELATED_CACHE_TTL_SECONDS")
}
