package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/pageza/recipe-finder/backend/config"
	"github.com/pageza/recipe-finder/backend/internal/logging"
	"github.com/pageza/recipe-finder/backend/internal/migrate"
)

func main() {
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	dir := flag.String("dir", "", "Read migrations from this directory instead of the bundled set")
	flag.Parse()

	logger, err := logging.New(config.GetEnvironment())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(*rollback, *dir, logger); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}
}

func run(rollback bool, dir string, logger *zap.Logger) error {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		dsn = cfg.PostgresDSN()
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	var files fs.FS = migrate.Files()
	if dir != "" {
		files = os.DirFS(dir)
	}
	m := migrate.New(db, files, logger)
	ctx := context.Background()

	if rollback {
		name, err := m.Rollback(ctx)
		if errors.Is(err, migrate.ErrNothingToRollback) {
			logger.Info("No migrations to rollback")
			return nil
		}
		if err != nil {
			return err
		}
		logger.Info("Successfully rolled back migration", zap.String("name", name))
		return nil
	}

	applied, err := m.Up(ctx)
	if err != nil {
		return err
	}
	logger.Info("All migrations applied successfully", zap.Int("applied", len(applied)))
	return nil
}
