package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	require.Equal(t, "", cfg.Database.DSN)
	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, "admin", cfg.BasicAuth.Username)
	require.Equal(t, 24*time.Hour, cfg.Session.TTL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_DSN", "postgres://localhost/webtriad?sslmode=disable")
	t.Setenv("API_USERNAME", "ops")
	t.Setenv("API_PASSWORD", "s3cret")
	t.Setenv("SESSION_SIGNING_KEY", "super-secret-key")
	t.Setenv("SESSION_TTL", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1:9090", cfg.Server.Addr())
	require.Equal(t, "postgres://localhost/webtriad?sslmode=disable", cfg.Database.DSN)
	require.Equal(t, "ops", cfg.BasicAuth.Username)
	require.Equal(t, "s3cret", cfg.BasicAuth.Password)
	require.Equal(t, "super-secret-key", cfg.Session.SigningKey)
	require.Equal(t, time.Hour, cfg.Session.TTL)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsBadTTL(t *testing.T) {
	t.Setenv("SESSION_TTL", "soon")

	_, err := Load()
	require.Error(t, err)
}
