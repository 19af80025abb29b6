package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_MODE", "")
	t.Setenv("PORT", "")
	t.Setenv("DB_DSN", "")
	t.Setenv("CACHE_TTL", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, AuthModeDev, cfg.Auth.Mode)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Empty(t, cfg.DB.DSN)
	assert.True(t, cfg.DB.Migrate)
	assert.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL)
}

func TestLoad_DotEnvFile(t *testing.T) {
	// godotenv no pisa variables existentes: registramos el restore con
	// t.Setenv y después las quitamos del entorno.
	for _, k := range []string{"PORT", "AUTH_MODE", "JWT_SECRET", "CACHE_TTL"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=9090\nAUTH_MODE=jwt\nJWT_SECRET=s3cret\nCACHE_TTL=30s\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, AuthModeJWT, cfg.Auth.Mode)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 30*time.Second, cfg.Redis.CacheTTL)
}

func TestLoad_JWTModeRequiresSecret(t *testing.T) {
	t.Setenv("AUTH_MODE", "jwt")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("PORT", "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("AUTH_MODE", "")
	t.Setenv("PORT", "")
	t.Setenv("CACHE_TTL", "five minutes")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}
