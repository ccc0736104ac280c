package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("POSTGRES_USER", "railgo")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "railgo")
}

func TestNewDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "disable", cfg.Postgres.SSLMode)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 10, cfg.Booking.RateLimit)
	assert.Equal(t, time.Minute, cfg.Booking.RateLimitWindow)
}

func TestNewMissingPostgresUser(t *testing.T) {
	t.Setenv("POSTGRES_USER", "")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "railgo")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POSTGRES_USER")
}

func TestNewInvalidPort(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "not-a-port")

	_, err := New()
	require.Error(t, err)
}

func TestNewOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("BOOKING_RATE_LIMIT", "25")
	t.Setenv("ADMIN_TOKEN", "tok")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 30*time.Minute, cfg.Auth.SessionTTL)
	assert.Equal(t, 25, cfg.Booking.RateLimit)
	assert.Equal(t, "tok", cfg.Server.AdminToken)
}

func TestPostgresDSN(t *testing.T) {
	pg := PostgresConfig{
		User:     "railgo",
		Password: "secret",
		Host:     "db",
		Port:     5433,
		Name:     "trains",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"postgres://railgo:secret@db:5433/trains?sslmode=disable",
		pg.DSN(),
	)
}
