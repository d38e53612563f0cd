package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MINIO_ENDPOINT", "minio:9000")
	t.Setenv("MINIO_PUBLIC_ENDPOINT", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gpt-3.5-turbo", cfg.OpenAIModel)
	assert.Equal(t, 15*time.Second, cfg.ClassifierTimeout)
	assert.Equal(t, "minio:9000", cfg.MinIOPublicEndpoint)
	assert.Equal(t, int64(5*1024*1024), cfg.MaxUploadSize)
	assert.True(t, cfg.RunMigrations)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CLASSIFIER_TIMEOUT", "3s")
	t.Setenv("ISSUE_DAILY_LIMIT", "0")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("MAX_IMAGES", "not-a-number")

	cfg := Load()

	assert.Equal(t, 3*time.Second, cfg.ClassifierTimeout)
	assert.Equal(t, 0, cfg.IssueDailyLimit)
	assert.True(t, cfg.MinIOUseSSL)
	assert.Equal(t, 10, cfg.MaxImages)
}

func TestNewOpenAIClient_RequiresKey(t *testing.T) {
	_, err := NewOpenAIClient(&Config{})
	assert.Error(t, err)

	client, err := NewOpenAIClient(&Config{OpenAIAPIKey: "sk-test", OpenAIBaseURL: "http://localhost:11434/v1"})
	assert.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewRedisClient_Errors(t *testing.T) {
	_, err := NewRedisClient(&Config{RedisURL: "memcached://localhost:11211"})
	assert.ErrorContains(t, err, "invalid REDIS_URL")

	_, err = NewRedisClient(&Config{RedisURL: "redis://127.0.0.1:1/0"})
	assert.ErrorContains(t, err, "redis ping")
}
