package config

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

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  env: production
  modules: [user, media]
database:
  driver: sqlite
  url: "file::memory:"
jwt:
  secret: from-file
  ttl: 60
workers:
  offer_ttl: 72h
`)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("SERVER_MODULES", "audition, media")
	t.Setenv("APPLICATION_FEE", "7.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, 60, cfg.JWT.TTL)
	assert.Equal(t, 72*time.Hour, cfg.Workers.OfferTTL)
	assert.Equal(t, 7.5, cfg.Application.Fee)
	assert.Equal(t, []string{ModuleAudition, ModuleMedia}, cfg.Server.Modules)
	assert.False(t, cfg.ModuleEnabled(ModuleUser))

	// Значения, которых нет в файле, берутся из Default
	assert.Equal(t, "@hourly", cfg.Workers.AuditionSchedule)
	assert.Equal(t, 8000, cfg.Gateway.Port)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("explicit path missing", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad env value", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", writeConfig(t, "server:\n  env: test\n"))
		t.Setenv("SERVER_PORT", "eighty")
		_, err := Load()
		assert.ErrorContains(t, err, "SERVER_PORT")
	})

	t.Run("secret required in production", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", writeConfig(t, "server:\n  env: production\n"))
		t.Setenv("JWT_SECRET", "")
		_, err := Load()
		assert.ErrorContains(t, err, "jwt secret")
	})
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.NotEmpty(t, cfg.JWT.Secret, "development gets a fallback secret")

	cfg = Default()
	cfg.Database.Driver = "oracle"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Server.Modules = []string{"billing"}
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Application.Fee = -1
	assert.Error(t, cfg.Validate())
}
