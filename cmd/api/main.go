package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/recipe-finder/backend/config"
	"github.com/pageza/recipe-finder/backend/internal/api"
	"github.com/pageza/recipe-finder/backend/internal/cache"
	"github.com/pageza/recipe-finder/backend/internal/client"
	"github.com/pageza/recipe-finder/backend/internal/database"
	"github.com/pageza/recipe-finder/backend/internal/discovery"
	"github.com/pageza/recipe-finder/backend/internal/logging"
	"github.com/pageza/recipe-finder/backend/internal/middleware"
	"github.com/pageza/recipe-finder/backend/internal/server"
	"github.com/pageza/recipe-finder/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg, logger)
	if err != nil {
		return err
	}

	var rdb *redis.Client
	if c, err := database.NewRedisClient(cfg, logger); err != nil {
		logger.Warn("Redis unavailable, running without cache and rate limiting", zap.Error(err))
	} else {
		rdb = c
		defer func() { _ = rdb.Close() }()
	}

	images := config.DefaultImageDefaults()
	if cfg.ImageDefaultsFile != "" {
		if images, err = config.LoadImageDefaults(cfg.ImageDefaultsFile); err != nil {
			return err
		}
	}

	authSvc := service.NewAuthService(db, cfg.JWTSecret)
	recipeSvc := service.NewRecipeService(db)

	var retriever discovery.Retriever = recipeSvc
	if cfg.DataServiceURL != "" {
		logger.Info("Using remote data service", zap.String("url", cfg.DataServiceURL))
		retriever = client.NewRecipeClient(cfg.DataServiceURL)
	}

	deps := api.Dependencies{
		DB:         db,
		Auth:       authSvc,
		Recipes:    recipeSvc,
		Retriever:  retriever,
		Normalizer: discovery.NewNormalizer(images),
	}

	if rdb != nil {
		cached := cache.NewRetriever(retriever, rdb, cfg.CacheTTL, logger)
		deps.Retriever = cached
		deps.Invalidator = cached
		deps.RateLimiter = middleware.NewDiscoverRateLimiter(rdb, cfg.RateLimit, cfg.RateLimitWindow, logger)
	}

	if cfg.S3Bucket != "" {
		s3Cfg, err := config.NewS3Config(ctx, cfg.S3Bucket, cfg.S3Region)
		if err != nil {
			return err
		}
		deps.Screen = append(deps.Screen, discovery.WithImageSigner(service.NewImageService(s3Cfg)))
	}

	return server.New(cfg, deps, logger).Run(ctx)
}
