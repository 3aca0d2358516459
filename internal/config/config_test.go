package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_BUCKET", "events")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://storage.googleapis.com", cfg.Store.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Store.Timeout)
	assert.Equal(t, 60, cfg.RateLimit.PublicPerMinute)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "development", cfg.Environment)
}

func TestLoadRequiresBucket(t *testing.T) {
	os.Unsetenv("STORE_BUCKET")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_BUCKET")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("STORE_BUCKET", "events")
	t.Setenv("STORE_BASE_URL", "https://store.internal/")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORE_TIMEOUT", "3s")
	t.Setenv("RATE_LIMIT_PUBLIC", "120")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "https://store.internal", cfg.Store.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Store.Timeout)
	assert.Equal(t, 120, cfg.RateLimit.PublicPerMinute)
	assert.Equal(t, "production", cfg.Environment)
}

func TestLoadDerivesPublicBaseURL(t *testing.T) {
	t.Setenv("STORE_BUCKET", "events")
	t.Setenv("STORE_BASE_URL", "https://storage.googleapis.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://storage.googleapis.com/events", cfg.Store.PublicBaseURL)
}

func TestLoadExplicitPublicBaseURLWins(t *testing.T) {
	t.Setenv("STORE_BUCKET", "events")
	t.Setenv("STORE_PUBLIC_BASE_URL", "https://cdn.example.com/feed")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/feed", cfg.Store.PublicBaseURL)
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("STORE_BUCKET", "events")
	t.Setenv("SERVER_PORT", "70000")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port")
}

func TestCORSAllowAllOnlyInDevelopment(t *testing.T) {
	t.Setenv("STORE_BUCKET", "events")
	t.Setenv("ENVIRONMENT", "development")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.CORS.AllowAllOrigins)

	t.Setenv("ENVIRONMENT", "production")
	cfg, err = Load()
	require.NoError(t, err)
	assert.False(t, cfg.CORS.AllowAllOrigins)

	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")
	cfg, err = Load()
	require.NoError(t, err)
	assert.False(t, cfg.CORS.AllowAllOrigins)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9000
store:
  bucket: events
  base_url: https://store.internal
  timeout: 5s
rate_limit:
  public_per_minute: 30
logging:
  level: debug
environment: test
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "events", cfg.Store.Bucket)
	assert.Equal(t, 5*time.Second, cfg.Store.Timeout)
	assert.Equal(t, 30, cfg.RateLimit.PublicPerMinute)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "test", cfg.Environment)
}

func TestLoadFileEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
store:
  bucket: events
server:
  port: 9000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("SERVER_PORT", "9001")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 9001, cfg.Server.Port)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o600))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}
