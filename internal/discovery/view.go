package discovery

import (
	"github.com/pageza/recipe-finder/backend/internal/types"
)

const (
	LoadingMessage = "Loading recipes..."
	EmptyMessage   = "No recipes found. Try another search or category."
)

// Card is a display recipe with its resolved category badge
type Card struct {
	types.DisplayRecipe
	Badge string `json:"badge"`
}

// View is everything the rendering layer needs for one frame of the screen
type View struct {
	Status     Status   `json:"status"`
	Seq        uint64   `json:"seq"`
	Search     string   `json:"search"`
	Category   string   `json:"category"`
	Categories []string `json:"categories"`
	Recipes    []Card   `json:"recipes"`
	Total      int      `json:"total"`
	Empty      bool     `json:"empty"`
	Message    string   `json:"message,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// Assemble builds a view from an orchestrator state, refining with the
// predicate that issued the state's retrieval. Categories are derived from
// the full normalized set; Recipes holds the refined subset.
func Assemble(st State, recipes []types.DisplayRecipe, palette map[string]string) View {
	pred := st.Predicate
	v := View{
		Status:     st.Status,
		Seq:        st.Seq,
		Search:     pred.Search,
		Category:   pred.Category,
		Categories: DeriveCategories(recipes),
		Recipes:    []Card{},
		Total:      len(recipes),
	}

	switch st.Status {
	case StatusLoading:
		v.Message = LoadingMessage
	case StatusError:
		if st.Err != nil {
			v.Error = st.Err.Message
		}
	case StatusSuccess:
		for _, r := range Filter(recipes, pred.Search, pred.Category) {
			v.Recipes = append(v.Recipes, Card{DisplayRecipe: r, Badge: BadgeFor(r.Category, palette)})
		}
		if len(v.Recipes) == 0 {
			v.Empty = true
			v.Message = EmptyMessage
		}
	}

	return v
}
