package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
logger:
  level: debug
server:
  port_http: ${DEVNOTES_TEST_PORT:-9090}
  auth_token: ${DEVNOTES_TEST_TOKEN:-}
gateway:
  cors_allowed_origins: "http://localhost:3000, http://example.com"
  rate_limit_rps: 50
storage:
  driver: memory
  data_dir: ${DEVNOTES_TEST_DIR:-/tmp/devnotes}
reminders:
  notifications_enabled: ${DEVNOTES_TEST_NOTIFY:-false}
  permission: authorized
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExpandEnvWithDefaults(t *testing.T) {
	t.Setenv("DEVNOTES_SET", "value")

	assert.Equal(t, "value", expandEnvWithDefaults("${DEVNOTES_SET:-fallback}"))
	assert.Equal(t, "fallback", expandEnvWithDefaults("${DEVNOTES_UNSET:-fallback}"))
	assert.Equal(t, "", expandEnvWithDefaults("${DEVNOTES_UNSET}"))
	assert.Equal(t, "a-value-b", expandEnvWithDefaults("a-${DEVNOTES_SET}-b"))
	assert.Equal(t, "plain", expandEnvWithDefaults("plain"))
}

func TestLoad_DefaultsFromPlaceholders(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, 9090, cfg.Server.PortHTTP)
	assert.Equal(t, "", cfg.Server.AuthToken)
	assert.Equal(t, DefaultShutdownTimeout, cfg.Server.GracefulShutdownTimeout)
	assert.Equal(t, 50, cfg.Gateway.RateLimitRPS)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "/tmp/devnotes", cfg.Storage.DataDir)
	assert.Empty(t, cfg.Storage.DSN)
	assert.Equal(t, DefaultCacheSize, cfg.Storage.CacheSize)
	assert.False(t, cfg.Reminders.NotificationsEnabled)
	assert.Equal(t, "authorized", cfg.Reminders.Permission)
	assert.Equal(t, DefaultFallbackInterval, cfg.Reminders.FallbackInterval)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DEVNOTES_TEST_PORT", "7000")
	t.Setenv("DEVNOTES_TEST_TOKEN", "secret")
	t.Setenv("DEVNOTES_TEST_NOTIFY", "true")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.PortHTTP)
	assert.Equal(t, "secret", cfg.Server.AuthToken)
	assert.True(t, cfg.Reminders.NotificationsEnabled)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	home, err := homedir.Dir()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, DefaultPortHTTP, cfg.Server.PortHTTP)
	assert.Equal(t, "*", cfg.Gateway.CORSAllowedOrigins)
	assert.Equal(t, DefaultRateLimitRPS, cfg.Gateway.RateLimitRPS)
	assert.Equal(t, DefaultDriver, cfg.Storage.Driver)
	assert.Equal(t, filepath.Join(home, ".devnotes"), cfg.Storage.DataDir)
	assert.Equal(t, filepath.Join(home, ".devnotes", "notes.db"), cfg.Storage.DSN)
	assert.Equal(t, DefaultCacheSize, cfg.Storage.CacheSize)
	assert.Equal(t, DefaultPermission, cfg.Reminders.Permission)
	assert.Equal(t, DefaultFallbackInterval, cfg.Reminders.FallbackInterval)
}

func TestLoad_EmptyPlaceholderUsesDefault(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
storage:
  driver: ${DEVNOTES_TEST_UNSET_DRIVER:-}
  data_dir: /tmp/devnotes-empty
`))
	require.NoError(t, err)

	assert.Equal(t, DefaultDriver, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/devnotes-empty/notes.db", cfg.Storage.DSN)
	assert.Equal(t, DefaultPortHTTP, cfg.Server.PortHTTP)
}

func TestApplyDefaults_RequiresStorage(t *testing.T) {
	assert.Error(t, ApplyDefaults(&Config{}))
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DEVNOTES_FROM_DOTENV=loaded\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("DEVNOTES_FROM_DOTENV") })

	LoadEnv(path)
	assert.Equal(t, "loaded", os.Getenv("DEVNOTES_FROM_DOTENV"))

	// отсутствующий файл не приводит к панике
	LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
}
