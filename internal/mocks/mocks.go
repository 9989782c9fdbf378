// Package mocks holds testify mocks for the service interfaces used by the HTTP layer.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipe-finder/backend/internal/model"
	"github.com/pageza/recipe-finder/backend/internal/types"
)

// MockRecipeStore is a mock implementation of the recipe data service
type MockRecipeStore struct {
	mock.Mock
}

// QueryRecipes mocks the QueryRecipes method
func (m *MockRecipeStore) QueryRecipes(ctx context.Context, q types.RecipeQuery) ([]types.RawRecipe, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RawRecipe), args.Error(1)
}

// GetRecipe mocks the GetRecipe method
func (m *MockRecipeStore) GetRecipe(ctx context.Context, id uuid.UUID) (*types.RawRecipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RawRecipe), args.Error(1)
}

// CreateRecipe mocks the CreateRecipe method
func (m *MockRecipeStore) CreateRecipe(ctx context.Context, userID uuid.UUID, req *types.CreateRecipeRequest) (*types.RawRecipe, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RawRecipe), args.Error(1)
}

// UserRecipes mocks the UserRecipes method
func (m *MockRecipeStore) UserRecipes(ctx context.Context, username string) (*types.UserRecipes, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserRecipes), args.Error(1)
}

// MockAuthService is a mock implementation of the auth service
type MockAuthService struct {
	mock.Mock
}

// Register mocks the Register method
func (m *MockAuthService) Register(ctx context.Context, req *types.RegisterRequest) (*model.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// Login mocks the Login method
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// GenerateToken mocks the GenerateToken method
func (m *MockAuthService) GenerateToken(user *model.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

// ValidateToken mocks the ValidateToken method
func (m *MockAuthService) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

// MockRetriever is a mock implementation of a recipe retriever
type MockRetriever struct {
	mock.Mock
}

// Retrieve mocks the Retrieve method
func (m *MockRetriever) Retrieve(ctx context.Context, q types.RecipeQuery) ([]types.RawRecipe, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RawRecipe), args.Error(1)
}
