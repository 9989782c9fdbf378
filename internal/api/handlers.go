package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/recipe-finder/backend/internal/database"
	"github.com/pageza/recipe-finder/backend/internal/discovery"
	"github.com/pageza/recipe-finder/backend/internal/middleware"
)

// Dependencies are the services the routes are built from. DB, Invalidator
// and RateLimiter are optional.
type Dependencies struct {
	DB          *gorm.DB
	Auth        Authenticator
	Recipes     RecipeStore
	Retriever   discovery.Retriever
	Normalizer  *discovery.Normalizer
	Screen      []discovery.ScreenOption
	Invalidator Invalidator
	RateLimiter *middleware.RateLimiter
	Logger      *zap.Logger
}

// HealthHandler reports liveness and, when a database is configured, its reachability
func HealthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := database.HealthCheck(ctx, db); err != nil {
				_ = c.Error(err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	}
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	router.GET("/health", HealthHandler(deps.DB))

	v1 := router.Group("/api/v1")

	if deps.Auth != nil {
		NewAuthHandler(deps.Auth, deps.Logger).RegisterRoutes(v1)
	}
	if deps.Recipes != nil {
		NewRecipeHandler(deps.Recipes, deps.Auth, deps.Invalidator, deps.Logger).RegisterRoutes(v1)
		NewUserHandler(deps.Recipes, deps.Auth).RegisterRoutes(v1)
	}

	var limits []gin.HandlerFunc
	if deps.RateLimiter != nil {
		limits = append(limits, deps.RateLimiter.Middleware())
	}
	NewDiscoverHandler(deps.Retriever, deps.Normalizer, deps.Logger, deps.Screen...).RegisterRoutes(v1, limits...)
}
