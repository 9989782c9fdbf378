package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const defaultSecretsDir = "/run/secrets"

// Config holds all configuration for the application
type Config struct {
	Env Environment

	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Discovery configuration
	DataServiceURL    string
	CacheTTL          time.Duration
	RateLimit         int
	RateLimitWindow   time.Duration
	ImageDefaultsFile string

	// Storage configuration
	S3Bucket string
	S3Region string
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{
		Env:               env,
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		ServerHost:        getEnv("SERVER_HOST", "0.0.0.0"),
		CORSOrigins:       getEnvList("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://frontend:5173"),
		DBDriver:          getEnv("DB_DRIVER", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "recipes"),
		DBSSLMode:         getEnv("DB_SSL_MODE", "disable"),
		SQLitePath:        getEnv("SQLITE_PATH", "recipes.db"),
		RedisHost:         getEnv("REDIS_HOST", "localhost"),
		RedisPort:         getEnv("REDIS_PORT", "6379"),
		RedisURL:          os.Getenv("REDIS_URL"),
		DataServiceURL:    os.Getenv("DATA_SERVICE_URL"),
		ImageDefaultsFile: os.Getenv("IMAGE_DEFAULTS_FILE"),
		S3Bucket:          os.Getenv("S3_BUCKET_NAME"),
		S3Region:          getEnv("AWS_REGION", "us-east-1"),
	}

	var err error
	if cfg.RedisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.RateLimit, err = getEnvInt("RATE_LIMIT", 120); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getEnvDuration("CACHE_TTL", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.RateLimitWindow, err = getEnvDuration("RATE_LIMIT_WINDOW", time.Minute); err != nil {
		return nil, err
	}

	// Sensitive values come from the environment in CI and from Docker secrets elsewhere
	cfg.DBUser = sensitive(env, "DB_USER", "db_user")
	cfg.DBPassword = sensitive(env, "DB_PASSWORD", "db_password")
	cfg.RedisPassword = sensitive(env, "REDIS_PASSWORD", "redis_password")
	cfg.JWTSecret = sensitive(env, "JWT_SECRET", "jwt_secret")

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// PostgresDSN returns the connection string for the Postgres data service
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// sensitive reads a value from the environment in CI, otherwise from the
// Docker secret, falling back to the environment variable.
func sensitive(env Environment, envVar, secret string) string {
	if !env.UsesSecrets() {
		return os.Getenv(envVar)
	}
	if v := readSecret(secret); v != "" {
		return v
	}
	return os.Getenv(envVar)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = defaultSecretsDir
	}
	data, err := os.ReadFile(filepath.Join(secretsDir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

// getEnvList splits a comma-separated variable, dropping empty entries
func getEnvList(key, fallback string) []string {
	var out []string
	for _, item := range strings.Split(getEnv(key, fallback), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
