// Package config loads process configuration from the environment once at
// startup. Credentials and signing keys live here and are passed explicitly
// into the components that need them; nothing reads process-wide state after
// Load returns.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host string
	Port int
}

// Addr returns the host:port listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig holds the PostgreSQL connection string. An empty DSN selects
// the in-memory store.
type DatabaseConfig struct {
	DSN string
}

// LoggingConfig holds log level and format.
type LoggingConfig struct {
	Level  string
	Format string
}

// BasicAuthConfig holds the static credential pair protecting the member API.
type BasicAuthConfig struct {
	Username string
	Password string
}

// SessionConfig holds the session token signing key and lifetime. AdminUser
// names an account granted the admin flag at startup; the flag cannot be
// granted over HTTP.
type SessionConfig struct {
	SigningKey string
	TTL        time.Duration
	AdminUser  string
}

// Config is the full process configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Logging   LoggingConfig
	BasicAuth BasicAuthConfig
	Session   SessionConfig
}

// Load reads configuration from the environment, applying defaults suitable
// for local development.
func Load() (*Config, error) {
	port, err := envInt("PORT", 8080)
	if err != nil {
		return nil, err
	}

	sessionTTL, err := envDuration("SESSION_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			Host: envString("HOST", "0.0.0.0"),
			Port: port,
		},
		Database: DatabaseConfig{
			DSN: envString("DATABASE_DSN", ""),
		},
		Logging: LoggingConfig{
			Level:  envString("LOG_LEVEL", "info"),
			Format: envString("LOG_FORMAT", "text"),
		},
		BasicAuth: BasicAuthConfig{
			Username: envString("API_USERNAME", "admin"),
			Password: envString("API_PASSWORD", "password"),
		},
		Session: SessionConfig{
			SigningKey: envString("SESSION_SIGNING_KEY", ""),
			TTL:        sessionTTL,
			AdminUser:  envString("QNA_ADMIN_USER", ""),
		},
	}, nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}
