package types

// CreateRecipeRequest is the body of POST /api/v1/recipes
type CreateRecipeRequest struct {
	Title        string       `json:"title" binding:"required"`
	Description  string       `json:"description"`
	Category     string       `json:"category" binding:"required"`
	ImageURL     string       `json:"imageUrl"`
	Ingredients  []string     `json:"ingredients" binding:"required,min=1"`
	Instructions Instructions `json:"instructions"`
}

// RegisterRequest is the body of POST /api/v1/auth/register
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the body of POST /api/v1/auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
