package cfg

import (
	"testing"
	"time"

	"github.com/DRSN-tech/resale-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("POSTGRES_USER", "resale")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "resale")
	t.Setenv("GEMINI_API_KEY", "key")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("PORT", "")

	c, err := Load(logger.Nop{})
	require.NoError(t, err)

	assert.Equal(t, "8080", c.Http.Port)
	assert.Equal(t, "localhost", c.Db.Host)
	assert.Equal(t, "db/migrations", c.Db.MigrationsPath)
	assert.False(t, c.Kafka.Enabled)
	assert.Equal(t, "resale.events", c.Kafka.Topic)
	assert.Equal(t, "articles", c.Minio.BucketName)
	assert.Equal(t, "https://www.vinted.fr", c.Import.BaseURL)
	assert.Equal(t, 15*time.Second, c.Import.StrategyTimeout)
	assert.Equal(t, time.Second, c.Import.StrategyDelay)
	assert.Equal(t, 10*time.Minute, c.Redis.ListingTTL)
	assert.Equal(t, "gemini-2.5-pro", c.Gemini.DescriptionModel)
	assert.Equal(t, "gemini-2.5-flash", c.Gemini.ReplyModel)
}

func TestLoad_PortFallbackAndKafka(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HTTP_PORT", "")
	t.Setenv("PORT", "5000")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")

	c, err := Load(logger.Nop{})
	require.NoError(t, err)

	assert.Equal(t, "5000", c.Http.Port)
	assert.True(t, c.Kafka.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, c.Kafka.Brokers)
}

func TestLoad_GeminiKeyFallback(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_AI_API_KEY", "google-key")

	c, err := Load(logger.Nop{})
	require.NoError(t, err)
	assert.Equal(t, "google-key", c.Gemini.APIKey)
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("POSTGRES_USER", "")

	_, err := Load(logger.Nop{})
	require.Error(t, err)
}

func TestLoad_InvalidDuration(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("IMPORT_STRATEGY_DELAY", "soon")

	_, err := Load(logger.Nop{})
	require.Error(t, err)
}

func TestLoadKeepAlive(t *testing.T) {
	t.Setenv("KEEPALIVE_URL", "http://app:8080/ping")
	t.Setenv("KEEPALIVE_INTERVAL", "1m")

	c, err := LoadKeepAlive(logger.Nop{})
	require.NoError(t, err)
	assert.Equal(t, "http://app:8080/ping", c.URL)
	assert.Equal(t, time.Minute, c.Interval)
	assert.Equal(t, 30*time.Second, c.RetryDelay)
}
