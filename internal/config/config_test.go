package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
  env: production
email:
  staff_email: staff@example.com
jwt:
  ttl: 30
`), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("APP_URL", "https://pools.example.com/")

	LoadConfig()
	cfg := GetConfig()

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Env)
	assert.Equal(t, "staff@example.com", cfg.Email.StaffEmail)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL())
	assert.Equal(t, "https://pools.example.com/login", cfg.LoginURL())
	// defaults survive partial files
	assert.Equal(t, 5, cfg.RateLimit.Requests)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("SERVER_PORT", "not-a-number")

	LoadConfig()

	assert.Equal(t, 8080, AppConfig.Server.Port)
	assert.True(t, AppConfig.IsDevelopment())
}
