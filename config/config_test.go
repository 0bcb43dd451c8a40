package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "API_URL", "API_TIMEOUT", "SESSION_COOKIE", "SESSION_TTL", "SESSION_SWEEP_INTERVAL", "GOOGLE_CLIENT_ID", "SERVICE_NAME"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, _, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.HTTP.Port)
	assert.Equal(t, "http://localhost:5000/api", cfg.API.URL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, "sid", cfg.Session.CookieName)
	assert.Equal(t, 168*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 10*time.Minute, cfg.Session.SweepInterval)
	assert.Empty(t, cfg.Google.ClientID)
	assert.Equal(t, "storefront", cfg.Common.ServiceName)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("API_URL", "http://api.internal/api")
	t.Setenv("API_TIMEOUT", "2s")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("GOOGLE_CLIENT_ID", "storefront.apps.googleusercontent.com")

	cfg, _, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, "http://api.internal/api", cfg.API.URL)
	assert.Equal(t, 2*time.Second, cfg.API.Timeout)
	assert.Equal(t, "redis:6379", cfg.Session.RedisAddr)
	assert.True(t, cfg.Session.CookieSecure)
	assert.Equal(t, "storefront.apps.googleusercontent.com", cfg.Google.ClientID)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("API_TIMEOUT", "soon")

	_, _, err := Load()
	assert.Error(t, err)
}
