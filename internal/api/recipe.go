package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/recipe-finder/backend/internal/middleware"
	"github.com/pageza/recipe-finder/backend/internal/service"
	"github.com/pageza/recipe-finder/backend/internal/types"
)

// RecipeStore is the data service behind the recipe endpoints
type RecipeStore interface {
	QueryRecipes(ctx context.Context, q types.RecipeQuery) ([]types.RawRecipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*types.RawRecipe, error)
	CreateRecipe(ctx context.Context, userID uuid.UUID, req *types.CreateRecipeRequest) (*types.RawRecipe, error)
	UserRecipes(ctx context.Context, username string) (*types.UserRecipes, error)
}

// Invalidator drops cached query results after a write
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// RecipeHandler serves /api/v1/recipes
type RecipeHandler struct {
	store       RecipeStore
	auth        middleware.TokenValidator
	invalidator Invalidator
	logger      *zap.Logger
}

// NewRecipeHandler creates a new RecipeHandler. invalidator may be nil.
func NewRecipeHandler(store RecipeStore, auth middleware.TokenValidator, invalidator Invalidator, logger *zap.Logger) *RecipeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecipeHandler{
		store:       store,
		auth:        auth,
		invalidator: invalidator,
		logger:      logger,
	}
}

// RegisterRoutes mounts the recipe endpoints
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", middleware.AuthMiddleware(h.auth), h.CreateRecipe)
	}
}

// ListRecipes answers the server-side filtered query. Parameters that are
// missing from the URL are not applied.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	var q types.RecipeQuery
	if category, ok := c.GetQuery("category"); ok {
		q.Category = &category
	}
	if search, ok := c.GetQuery("search"); ok {
		q.Search = &search
	}

	recipes, err := h.store.QueryRecipes(c.Request.Context(), q)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipes": recipes,
	})
}

// GetRecipe returns one recipe by ID
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	recipe, err := h.store.GetRecipe(c.Request.Context(), id)
	if errors.Is(err, service.ErrRecipeNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipe"})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// CreateRecipe stores a recipe for the authenticated user
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := c.Get(middleware.ContextUserID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	recipe, err := h.store.CreateRecipe(c.Request.Context(), userID.(uuid.UUID), &req)
	switch {
	case errors.Is(err, service.ErrMissingInstructions):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	case err != nil:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}

	if h.invalidator != nil {
		if err := h.invalidator.Invalidate(c.Request.Context()); err != nil {
			h.logger.Warn("failed to invalidate recipe cache", zap.Error(err))
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"recipe": recipe,
	})
}
