package discovery

import "github.com/pageza/recipe-finder/backend/internal/types"

// AllCategories is the wildcard category that matches every recipe
const AllCategories = "All"

// DeriveCategories returns "All" followed by each distinct category in
// order of first appearance. A record categorised as "All" does not add a
// second sentinel entry.
func DeriveCategories(recipes []types.DisplayRecipe) []string {
	categories := []string{AllCategories}
	seen := map[string]struct{}{AllCategories: {}}
	for _, r := range recipes {
		if _, ok := seen[r.Category]; ok {
			continue
		}
		seen[r.Category] = struct{}{}
		categories = append(categories, r.Category)
	}
	return categories
}
