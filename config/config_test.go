package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSecret(t *testing.T, dir, name, value string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(value+"\n"), 0o600))
}

func TestLoadConfigCI(t *testing.T) {
	t.Setenv("CI", "true")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("CACHE_TTL", "5s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://recipes.example.com, ,http://localhost:3000")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, CI, cfg.Env)
	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "postgres", cfg.DBUser)
	assert.Equal(t, "postgres", cfg.DBPassword)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, 5*time.Second, cfg.CacheTTL)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, []string{"https://recipes.example.com", "http://localhost:3000"}, cfg.CORSOrigins)
}

func TestLoadConfigSecrets(t *testing.T) {
	dir := t.TempDir()
	writeSecret(t, dir, "db_user", "app")
	writeSecret(t, dir, "db_password", "s3cret")
	writeSecret(t, dir, "jwt_secret", "jwt-from-secret")

	t.Setenv("CI", "")
	t.Setenv("ENV", "development")
	t.Setenv("SECRETS_DIR", dir)
	t.Setenv("JWT_SECRET", "ignored-when-secret-present")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Development, cfg.Env)
	assert.Equal(t, "app", cfg.DBUser)
	assert.Equal(t, "s3cret", cfg.DBPassword)
	assert.Equal(t, "jwt-from-secret", cfg.JWTSecret)
	assert.Contains(t, cfg.PostgresDSN(), "user=app")
}

func TestLoadConfigMissingSecrets(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("DB_USER", "")
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)

	var verr ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "required secret db_password is not set")
	assert.Contains(t, err.Error(), "required secret jwt_secret is not set")
}

func TestLoadConfigInvalidDuration(t *testing.T) {
	t.Setenv("CI", "true")
	t.Setenv("CACHE_TTL", "soon")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "invalid CACHE_TTL")
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Env:        Development,
			DBDriver:   "sqlite",
			SQLitePath: ":memory:",
			JWTSecret:  "secret",
		}
	}

	assert.NoError(t, ValidateConfig(valid()))

	cfg := valid()
	cfg.DBDriver = "mysql"
	assert.ErrorContains(t, ValidateConfig(cfg), "unsupported driver")

	cfg = valid()
	cfg.Env = Production
	assert.ErrorContains(t, ValidateConfig(cfg), "at least 32 characters")

	cfg = valid()
	cfg.DataServiceURL = "not a url"
	assert.ErrorContains(t, ValidateConfig(cfg), "DATA_SERVICE_URL")
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())
	assert.True(t, GetEnvironment().IsProduction())

	t.Setenv("ENV", "")
	assert.Equal(t, Development, GetEnvironment())

	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())
	assert.False(t, CI.UsesSecrets())
}
