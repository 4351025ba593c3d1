package appconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_TemplatesEnvironment(t *testing.T) {
	t.Setenv("CRM_API_URL", "https://crm.example.com")
	t.Setenv("CRM_JWT_SECRET", "s3cret")

	path := writeConfig(t, `
api:
  baseURL: {{.CRM_API_URL}}
  timeout: 5s
storage:
  driver: redis
  redis:
    addr: redis:6379
    ttl: 1h
sandbox:
  jwtSecret: {{.CRM_JWT_SECRET}}
  users:
    - email: a@b.com
      password: pw
      role: admin
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://crm.example.com", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, DriverRedis, cfg.Storage.Driver)
	assert.Equal(t, "redis:6379", cfg.Storage.Redis.Addr)
	assert.Equal(t, time.Hour, cfg.Storage.Redis.TTL)
	assert.Equal(t, "s3cret", cfg.Sandbox.JWTSecret)
	require.Len(t, cfg.Sandbox.Users, 1)
	assert.Equal(t, "admin", cfg.Sandbox.Users[0].Role)

	// untouched values keep their defaults
	assert.Equal(t, 8080, cfg.Sandbox.Port)
	assert.Equal(t, "crm-console:", cfg.Storage.Redis.Prefix)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "storage:\n  driver: floppy\n"))
	assert.ErrorContains(t, err, "floppy")
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
	assert.Zero(t, Default().API.Timeout)
}
