package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Run("Should apply defaults in development", func(t *testing.T) {
		t.Setenv("APP_ENV", "development")
		t.Setenv("JWT_SECRET", "")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, DriverFile, cfg.StoreDriver)
		assert.Equal(t, devJWTSecret, cfg.JWTSecret)
		assert.Equal(t, time.Hour, cfg.JWTExpiresIn)
		assert.Equal(t, 10, cfg.BcryptCost)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("Should require a JWT secret in production", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("JWT_SECRET", "")

		_, err := FromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})

	t.Run("Should read overrides", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("JWT_EXPIRES_IN", "30m")
		t.Setenv("CORS_ALLOWED_ORIGINS", "*")
		t.Setenv("STORE_DRIVER", "sqlite")
		t.Setenv("DB_DSN", "leave.db")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.True(t, cfg.IsProduction())
		assert.Equal(t, 30*time.Minute, cfg.JWTExpiresIn)
		assert.True(t, cfg.AllowAllOrigins())
		assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	})

	t.Run("Should reject relational driver without DSN", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "postgres")
		t.Setenv("DB_DSN", "")

		_, err := FromEnv()
		require.Error(t, err)
	})

	t.Run("Should reject unknown driver", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "mysql")

		_, err := FromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported STORE_DRIVER")
	})
}
