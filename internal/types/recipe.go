package types

import (
	"encoding/json"
	"time"
)

// Creator identifies the user who created a recipe
type Creator struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

// RawRecipe represents a recipe as delivered by the data service
type RawRecipe struct {
	ID           string       `json:"_id"`
	Title        string       `json:"title"`
	Description  *string      `json:"description,omitempty"`
	Ingredients  []string     `json:"ingredients"`
	Instructions Instructions `json:"instructions"`
	Category     string       `json:"category"`
	ImageURL     *string      `json:"imageUrl,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
	CreatedBy    Creator      `json:"createdBy"`
}

// UnmarshalJSON accepts "id" as an alias of "_id"
func (r *RawRecipe) UnmarshalJSON(data []byte) error {
	type Alias RawRecipe
	aux := &struct {
		AltID string `json:"id"`
		*Alias
	}{
		Alias: (*Alias)(r),
	}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	if r.ID == "" {
		r.ID = aux.AltID
	}
	return nil
}

// DisplayRecipe is the normalized, render-ready form of a recipe.
// Description is never absent and ImageURL is never empty.
type DisplayRecipe struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	ImageURL     string   `json:"imageUrl"`
	CreatedBy    string   `json:"createdBy,omitempty"`
}

// RecipeQuery holds the retrieval parameters sent to the data service.
// A nil field means the parameter is absent.
type RecipeQuery struct {
	Category *string `json:"category"`
	Search   *string `json:"search"`
}

// CategoryValue returns the category or "" when absent
func (q RecipeQuery) CategoryValue() string {
	if q.Category == nil {
		return ""
	}
	return *q.Category
}

// SearchValue returns the search term or "" when absent
func (q RecipeQuery) SearchValue() string {
	if q.Search == nil {
		return ""
	}
	return *q.Search
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}

// UserRecipes is an author together with the recipes they created, newest first
type UserRecipes struct {
	User    Creator     `json:"user"`
	Recipes []RawRecipe `json:"recipes"`
}
