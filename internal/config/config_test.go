package config

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, uint16(8080), cfg.HTTP.Port)
	assert.Equal(t, "http://localhost:5000/api", cfg.Backend.BaseURL.String())
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "postgres", cfg.Prefs.Normalized())
	assert.Equal(t, "mesa_session", cfg.Session.CookieName)
	assert.Equal(t, "role", cfg.Auth.RoleClaim)
	assert.False(t, cfg.Otel.Enabled)
	assert.Equal(t, slog.LevelInfo, cfg.Log.SlogLevel())
	assert.Equal(t, "text", cfg.Log.SlogFormat())
	assert.Equal(t, int32(4), cfg.Psql.MaxConns)
	assert.Equal(t, 5*time.Second, cfg.Psql.PingTimeout)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("BACKEND_BASE_URL", "https://api.example/v2")
	t.Setenv("PREFS_DRIVER", "SQLite")
	t.Setenv("LOG_LEVEL", "warning")
	t.Setenv("LOG_FORMAT", "JSON")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, uint16(9090), cfg.HTTP.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, "/v2", cfg.Backend.BaseURL.Path)
	assert.Equal(t, "sqlite", cfg.Prefs.Normalized())
	assert.Equal(t, slog.LevelWarn, cfg.Log.SlogLevel())
	assert.Equal(t, "json", cfg.Log.SlogFormat())
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("HTTP_PORT", "not-a-port")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoggerHandler(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{}
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"

	logger := slog.New(cfg.Log.Handler(&buf))
	logger.Debug("hello", slog.String("k", "v"))
	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"k":"v"`)

	buf.Reset()
	cfg.Log.Level = "error"
	cfg.Log.Format = "text"
	logger = slog.New(cfg.Log.Handler(&buf))
	logger.Info("dropped")
	assert.Empty(t, buf.String())
}
