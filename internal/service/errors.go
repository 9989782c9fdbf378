package service

import "errors"

var (
	ErrRecipeNotFound      = errors.New("recipe not found")
	ErrMissingInstructions = errors.New("instructions are required")
	ErrUserNotFound        = errors.New("user not found")
	ErrUserExists          = errors.New("user already exists")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidToken        = errors.New("invalid token")
)
