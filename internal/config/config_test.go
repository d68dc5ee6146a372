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

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 30*time.Second, cfg.RateLimitSubmission)
	assert.Equal(t, 256, cfg.GradingQueueSize)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
}

func TestLoadReadsSecretsFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("GEMINI_API_KEY", "test-gemini-key")
	t.Setenv("MEILI_MASTER_KEY", "test-meili-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "test-gemini-key", cfg.GeminiAPIKey)
	assert.Equal(t, "test-meili-key", cfg.MeiliMasterKey)
}

func TestLoadRejectsInvalidDurations(t *testing.T) {
	t.Setenv("JWT_TTL", "not-a-duration")

	_, err := Load()
	assert.Error(t, err)
}
