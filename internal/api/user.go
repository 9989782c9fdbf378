package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-finder/backend/internal/middleware"
	"github.com/pageza/recipe-finder/backend/internal/service"
	"github.com/pageza/recipe-finder/backend/internal/types"
)

// UserRecipeLister lists the recipes created by one author
type UserRecipeLister interface {
	UserRecipes(ctx context.Context, username string) (*types.UserRecipes, error)
}

// UserHandler serves author-scoped recipe listings
type UserHandler struct {
	recipes UserRecipeLister
	auth    middleware.TokenValidator
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(recipes UserRecipeLister, auth middleware.TokenValidator) *UserHandler {
	return &UserHandler{recipes: recipes, auth: auth}
}

// RegisterRoutes mounts /users/:username/recipes and, when tokens can be
// validated, /me/recipes
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/users/:username/recipes", h.ListUserRecipes)
	if h.auth != nil {
		router.GET("/me/recipes", middleware.AuthMiddleware(h.auth), h.ListMyRecipes)
	}
}

// ListUserRecipes returns a user and the recipes they created
func (h *UserHandler) ListUserRecipes(c *gin.Context) {
	h.respond(c, c.Param("username"))
}

// ListMyRecipes returns the authenticated user's recipes
func (h *UserHandler) ListMyRecipes(c *gin.Context) {
	username := c.GetString(middleware.ContextUsername)
	if username == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	h.respond(c, username)
}

func (h *UserHandler) respond(c *gin.Context, username string) {
	result, err := h.recipes.UserRecipes(c.Request.Context(), username)
	if errors.Is(err, service.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user recipes"})
		return
	}

	c.JSON(http.StatusOK, result)
}
