package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.congress.gov/v3", cfg.Congress.BaseURL)
	assert.Equal(t, "https://v3.openstates.org", cfg.OpenStates.BaseURL)
	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.Anthropic.Model)
	assert.Equal(t, 8, cfg.Anthropic.MaxConcurrent)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 30, cfg.Cache.TTLMinutes)
	assert.Equal(t, 2, cfg.Cache.CivicTTLHours)
	assert.Equal(t, 256, cfg.Cache.MaxEntries)
	assert.Equal(t, "demo", cfg.RateLimit.Mode)
	assert.Equal(t, 10, cfg.RateLimit.PerHour)
	assert.Equal(t, 40, cfg.RateLimit.PerDay)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Empty(t, cfg.Congress.Key)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
congress:
  key: test-congress-key
cache:
  backend: sqlite
  ttl_minutes: 90
log:
  level: debug
  format: console
server:
  port: 9090
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-congress-key", cfg.Congress.Key)
	assert.Equal(t, "sqlite", cfg.Cache.Backend)
	assert.Equal(t, 90, cfg.Cache.TTLMinutes)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 9090, cfg.Server.Port)
	// Defaults still apply for unset values
	assert.Equal(t, "demo", cfg.RateLimit.Mode)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
ratelimit:
  mode: demo
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("CIVICFEED_RATELIMIT_MODE", "standard")
	t.Setenv("CIVICFEED_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "standard", cfg.RateLimit.Mode)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("CIVICFEED_SERVER_PORT", "3000")
	t.Setenv("CIVICFEED_ANTHROPIC_KEY", "sk-ant-test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "sk-ant-test", cfg.Anthropic.Key)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

func validDefaults() *Config {
	cfg := &Config{}
	cfg.Cache.Backend = "memory"
	cfg.RateLimit.Mode = "demo"
	cfg.Server.Port = 8080
	return cfg
}

func TestValidateServe_ValidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 9090

	assert.NoError(t, cfg.Validate("serve"))
}

func TestValidateServe_InvalidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0

	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
}

func TestValidateBadRateLimitMode(t *testing.T) {
	cfg := validDefaults()
	cfg.RateLimit.Mode = "unlimited"

	err := cfg.Validate("feed")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ratelimit.mode")
}

func TestValidateBadCacheBackend(t *testing.T) {
	cfg := validDefaults()
	cfg.Cache.Backend = "redis"

	err := cfg.Validate("feed")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cache.backend")
}

func TestValidateFeedNeedsNoCredentials(t *testing.T) {
	assert.NoError(t, validDefaults().Validate("feed"))
}
