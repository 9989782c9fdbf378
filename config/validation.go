package config

import (
	"errors"
	"fmt"
	"net/url"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs []error

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBUser == "" {
			errs = append(errs, ValidationError{Field: "DB_USER", Message: missingMessage(cfg.Env, "db_user")})
		}
		if cfg.DBPassword == "" {
			errs = append(errs, ValidationError{Field: "DB_PASSWORD", Message: missingMessage(cfg.Env, "db_password")})
		}
	case "sqlite":
		if cfg.SQLitePath == "" {
			errs = append(errs, ValidationError{Field: "SQLITE_PATH", Message: "is required for the sqlite driver"})
		}
	default:
		errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	if cfg.JWTSecret == "" {
		errs = append(errs, ValidationError{Field: "JWT_SECRET", Message: missingMessage(cfg.Env, "jwt_secret")})
	}

	if cfg.Env == Production && len(cfg.JWTSecret) < 32 {
		errs = append(errs, ValidationError{Field: "JWT_SECRET", Message: "must be at least 32 characters in production"})
	}

	if cfg.DataServiceURL != "" {
		if u, err := url.Parse(cfg.DataServiceURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, ValidationError{Field: "DATA_SERVICE_URL", Message: "must be an absolute URL"})
		}
	}

	if cfg.RateLimit < 0 {
		errs = append(errs, ValidationError{Field: "RATE_LIMIT", Message: "must not be negative"})
	}

	if cfg.CacheTTL < 0 {
		errs = append(errs, ValidationError{Field: "CACHE_TTL", Message: "must not be negative"})
	}

	return errors.Join(errs...)
}

func missingMessage(env Environment, secret string) string {
	if env.UsesSecrets() {
		return fmt.Sprintf("required secret %s is not set", secret)
	}
	return "required environment variable is not set in CI environment"
}
