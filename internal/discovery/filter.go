package discovery

import (
	"strings"

	"github.com/pageza/recipe-finder/backend/internal/types"
)

// Predicate is the user-owned refinement state: a free-text search and a
// selected category (or AllCategories).
type Predicate struct {
	Search   string `json:"search"`
	Category string `json:"category"`
}

// NewPredicate returns a predicate, treating an empty category as AllCategories
func NewPredicate(search, category string) Predicate {
	if category == "" {
		category = AllCategories
	}
	return Predicate{Search: search, Category: category}
}

// Matches reports whether a recipe satisfies both the search and category predicates
func (p Predicate) Matches(r types.DisplayRecipe) bool {
	return matchesSearch(r, p.Search) && matchesCategory(r, p.Category)
}

// Query translates the predicate into retrieval parameters
func (p Predicate) Query() types.RecipeQuery {
	return NewRecipeQuery(p.Search, p.Category)
}

// Filter returns the recipes whose title contains search (case-insensitive)
// and whose category equals category, unless category is AllCategories.
// Relative order is preserved and the input is not modified.
func Filter(recipes []types.DisplayRecipe, search, category string) []types.DisplayRecipe {
	p := NewPredicate(search, category)
	out := make([]types.DisplayRecipe, 0, len(recipes))
	for _, r := range recipes {
		if p.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// NewRecipeQuery builds retrieval parameters, mapping an empty search and
// the AllCategories sentinel to absent values.
func NewRecipeQuery(search, category string) types.RecipeQuery {
	var q types.RecipeQuery
	if category != "" && category != AllCategories {
		q.Category = types.StringPtr(category)
	}
	if search != "" {
		q.Search = types.StringPtr(search)
	}
	return q
}

func matchesSearch(r types.DisplayRecipe, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Title), strings.ToLower(search))
}

func matchesCategory(r types.DisplayRecipe, category string) bool {
	return category == AllCategories || r.Category == category
}
