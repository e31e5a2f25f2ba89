package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "API_BASE_URL", "REQUEST_TIMEOUT", "REDIS_ADDR", "ALLOWED_ORIGINS", "OAUTH_PROVIDER", "CURRENCY"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	assert.Equal(t, "8083", cfg.Port)
	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	assert.Equal(t, "google", cfg.OAuthProvider)
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "@every 1m", cfg.RefreshSchedule)
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.com//")
	t.Setenv("REQUEST_TIMEOUT", "15")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("SESSION_COOKIE", "SESSION=abc")
	t.Setenv("CURRENCY", "eur")

	cfg := Load()
	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, "SESSION=abc", cfg.SessionCookie)
	assert.Equal(t, "EUR", cfg.Currency)

	t.Setenv("REQUEST_TIMEOUT", "2m")
	assert.Equal(t, 2*time.Minute, Load().RequestTimeout)
	t.Setenv("REQUEST_TIMEOUT", "soon")
	assert.Equal(t, 10*time.Second, Load().RequestTimeout)
}

func TestConnectRedisWithoutAddress(t *testing.T) {
	rdb, err := ConnectRedis(context.Background(), Config{})
	require.NoError(t, err)
	assert.Nil(t, rdb)
}

func TestCorsConfig(t *testing.T) {
	open := corsConfig(Config{})
	require.NotNil(t, open.AllowOriginFunc)
	assert.True(t, open.AllowOriginFunc("http://anything.test"))
	assert.True(t, open.AllowCredentials)

	closed := corsConfig(Config{AllowedOrigins: []string{"http://a.test"}})
	assert.Nil(t, closed.AllowOriginFunc)
	assert.Equal(t, []string{"http://a.test"}, closed.AllowOrigins)
	assert.NoError(t, closed.Validate())
}
