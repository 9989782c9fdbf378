package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pageza/recipe-finder/backend/config"
)

// New builds the application logger for the given environment.
// Production and CI log JSON at info level; development and test log
// human-readable output at debug level.
func New(env config.Environment) (*zap.Logger, error) {
	var cfg zap.Config
	switch env {
	case config.Production, config.CI:
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.With(zap.String("env", string(env))), nil
}
