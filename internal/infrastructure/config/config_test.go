package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"CULINARY_APP_NAME",
	"CULINARY_APP_ENV",
	"CULINARY_APP_PORT",
	"CULINARY_DATABASE_HOST",
	"CULINARY_DATABASE_PORT",
	"CULINARY_DATABASE_PASSWORD",
	"CULINARY_DATABASE_SSLMODE",
	"CULINARY_DATABASE_MAX_OPEN_CONNS",
	"CULINARY_DATABASE_MAX_IDLE_CONNS",
	"CULINARY_JWT_ENABLED",
	"CULINARY_JWT_SECRET",
	"CULINARY_STORAGE_TYPE",
	"CULINARY_STORAGE_BUCKET",
	"CULINARY_SCHEDULER_DAILY_HOUR",
	"CULINARY_SWAGGER_ENABLED",
	"CULINARY_SWAGGER_ALLOWED_IPS",
	"CULINARY_BUSINESS_SPLIT_COMPANY",
	"CULINARY_BUSINESS_FALLBACK_CURRENCY",
	"CULINARY_BUSINESS_PROFORMA_DUE_DAYS",
}

// isolateEnv clears the keys used by these tests and restores them afterwards
func isolateEnv(t *testing.T) {
	t.Helper()
	saved := make(map[string]string, len(envKeys))
	for _, k := range envKeys {
		saved[k] = os.Getenv(k)
		os.Unsetenv(k)
	}
	t.Cleanup(func() {
		for k, v := range saved {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when no env vars set", func(t *testing.T) {
		isolateEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "culinary-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "culinary", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, "memory", cfg.Storage.Type)
		assert.Equal(t, 15*time.Minute, cfg.Storage.PresignExpiration)
		assert.Equal(t, 1, cfg.Scheduler.DailyHour)
		assert.Equal(t, "Culinary", cfg.Business.SplitCompany)
		assert.Equal(t, "Mutfak - ", cfg.Business.KitchenCompanyPrefix)
		assert.Equal(t, "Standard Selling", cfg.Business.StandardPriceList)
		assert.Equal(t, "EUR", cfg.Business.FallbackCurrency)
		assert.Equal(t, 30, cfg.Business.ProformaDueDays)
	})

	t.Run("loads values from environment variables with CULINARY prefix", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("CULINARY_APP_PORT", "9000")
		os.Setenv("CULINARY_DATABASE_HOST", "testdb.local")
		os.Setenv("CULINARY_DATABASE_PORT", "5433")
		os.Setenv("CULINARY_BUSINESS_SPLIT_COMPANY", "Group Kitchen")
		os.Setenv("CULINARY_BUSINESS_PROFORMA_DUE_DAYS", "14")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "Group Kitchen", cfg.Business.SplitCompany)
		assert.Equal(t, 14, cfg.Business.ProformaDueDays)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("CULINARY_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("CULINARY_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("rejects unknown storage type", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("CULINARY_STORAGE_TYPE", "ftp")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.type")
	})

	t.Run("s3 storage requires a bucket", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("CULINARY_STORAGE_TYPE", "s3")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.bucket")
	})

	t.Run("rejects out of range scheduler hour", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("CULINARY_SCHEDULER_DAILY_HOUR", "24")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "scheduler.daily_hour")
	})

	t.Run("rejects malformed fallback currency", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("CULINARY_BUSINESS_FALLBACK_CURRENCY", "EURO")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "fallback_currency")
	})

	t.Run("jwt enabled requires a secret", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("CULINARY_JWT_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret is required")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	setValidProductionBase := func() {
		os.Setenv("CULINARY_APP_ENV", "production")
		os.Setenv("CULINARY_JWT_ENABLED", "true")
		os.Setenv("CULINARY_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		os.Setenv("CULINARY_DATABASE_PASSWORD", "secure-password")
		os.Setenv("CULINARY_DATABASE_SSLMODE", "require")
		os.Setenv("CULINARY_SWAGGER_ENABLED", "false")
	}

	t.Run("passes validation with valid production config", func(t *testing.T) {
		isolateEnv(t)
		setValidProductionBase()

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})

	t.Run("requires jwt secret of at least 32 characters", func(t *testing.T) {
		isolateEnv(t)
		setValidProductionBase()
		os.Setenv("CULINARY_JWT_SECRET", "short-secret")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 32 characters")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		isolateEnv(t)
		setValidProductionBase()
		os.Setenv("CULINARY_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode cannot be 'disable'")
	})

	t.Run("swagger needs an IP allow list in production", func(t *testing.T) {
		isolateEnv(t)
		setValidProductionBase()
		os.Setenv("CULINARY_SWAGGER_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "swagger endpoint")

		os.Setenv("CULINARY_SWAGGER_ALLOWED_IPS", "10.0.0.1")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, []string{"10.0.0.1"}, cfg.Swagger.AllowedIPs)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost:5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "/testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		assert.Contains(t, cfg.DSN(), "pass%40word%23123")
	})
}

func TestRedisConfig_Addr(t *testing.T) {
	assert.Equal(t, "cache:6380", RedisConfig{Host: "cache", Port: 6380}.Addr())
}
