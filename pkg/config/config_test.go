package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "DB_DRIVER", "MONGODB_URI", "DATABASE_NAME", "POSTGRES_DSN", "DB_TIMEOUT",
		"JWT_SECRET", "SECRET_KEY", "JWT_ACCESS_EXPIRY", "BCRYPT_COST", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5001", cfg.Port)
	assert.Equal(t, DriverMongo, cfg.DBDriver)
	assert.Equal(t, "ExploreHub-DB", cfg.DatabaseName)
	assert.Equal(t, 3000*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, 10*time.Second, cfg.DBTimeout)
	assert.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}

func TestLoad_MissingSecretFails(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingSecret))
}

func TestLoad_SecretKeyFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("SECRET_KEY", "legacy")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "legacy", cfg.JWTSecret)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "k")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", DriverPostgres)
	t.Setenv("POSTGRES_DSN", "postgres://u:p@localhost/db")
	t.Setenv("JWT_ACCESS_EXPIRY", "15m")
	t.Setenv("BCRYPT_COST", "4")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, 4, cfg.BcryptCost)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad expiry", map[string]string{"JWT_ACCESS_EXPIRY": "soon"}},
		{"negative expiry", map[string]string{"JWT_ACCESS_EXPIRY": "-1m"}},
		{"bad timeout", map[string]string{"DB_TIMEOUT": "x"}},
		{"bad cost", map[string]string{"BCRYPT_COST": "abc"}},
		{"cost out of range", map[string]string{"BCRYPT_COST": "99"}},
		{"unknown driver", map[string]string{"DB_DRIVER": "sqlite"}},
		{"postgres without dsn", map[string]string{"DB_DRIVER": DriverPostgres}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("JWT_SECRET", "k")
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
