package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipe-finder/backend/internal/model"
	"github.com/pageza/recipe-finder/backend/internal/types"
)

// RecipeService handles recipe storage and the server-side query
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// QueryRecipes returns recipes matching the optional category (exact) and
// search (case-insensitive substring of the title), newest first.
func (s *RecipeService) QueryRecipes(ctx context.Context, q types.RecipeQuery) ([]types.RawRecipe, error) {
	query := s.db.WithContext(ctx).Preload("CreatedBy")

	if q.Category != nil {
		query = query.Where("category = ?", *q.Category)
	}
	if q.Search != nil && *q.Search != "" {
		query = query.Where("LOWER(title) LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(*q.Search))+"%")
	}

	var recipes []model.Recipe
	if err := query.Order("created_at DESC").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}

	out := make([]types.RawRecipe, 0, len(recipes))
	for i := range recipes {
		out = append(out, recipes[i].ToRaw())
	}
	return out, nil
}

// Retrieve lets the service act as an in-process retriever for the discovery screen
func (s *RecipeService) Retrieve(ctx context.Context, q types.RecipeQuery) ([]types.RawRecipe, error) {
	return s.QueryRecipes(ctx, q)
}

// UserRecipes returns the recipes created by username, newest first
func (s *RecipeService) UserRecipes(ctx context.Context, username string) (*types.UserRecipes, error) {
	var author model.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&author).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	var recipes []model.Recipe
	if err := s.db.WithContext(ctx).
		Where("created_by_id = ?", author.ID).
		Order("created_at DESC").
		Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to query user recipes: %w", err)
	}

	out := &types.UserRecipes{
		User:    types.Creator{ID: author.ID.String(), Username: author.Username},
		Recipes: make([]types.RawRecipe, 0, len(recipes)),
	}
	for i := range recipes {
		recipes[i].CreatedBy = author
		out.Recipes = append(out.Recipes, recipes[i].ToRaw())
	}
	return out, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*types.RawRecipe, error) {
	var recipe model.Recipe
	err := s.db.WithContext(ctx).Preload("CreatedBy").First(&recipe, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	raw := recipe.ToRaw()
	return &raw, nil
}

// CreateRecipe stores a new recipe authored by userID
func (s *RecipeService) CreateRecipe(ctx context.Context, userID uuid.UUID, req *types.CreateRecipeRequest) (*types.RawRecipe, error) {
	if req.Instructions.IsZero() {
		return nil, ErrMissingInstructions
	}

	var author model.User
	err := s.db.WithContext(ctx).First(&author, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load author: %w", err)
	}

	recipe := model.Recipe{
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Category:     strings.TrimSpace(req.Category),
		ImageURL:     req.ImageURL,
		Ingredients:  model.JSONBStringArray(req.Ingredients),
		Instructions: req.Instructions,
		CreatedByID:  author.ID,
		CreatedBy:    author,
	}
	if err := s.db.WithContext(ctx).Omit("CreatedBy").Create(&recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	raw := recipe.ToRaw()
	return &raw, nil
}

// escapeLike escapes LIKE wildcards so the search term matches literally
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
