package discovery

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-finder/backend/config"
	"github.com/pageza/recipe-finder/backend/internal/types"
)

func scenarioRecipes() []types.RawRecipe {
	return []types.RawRecipe{
		{
			ID:           "r1",
			Title:        "Tacos",
			Category:     "Mexican",
			Ingredients:  []string{"tortillas", "beef"},
			Instructions: types.StepInstructions("Cook beef", "Fill tortillas"),
		},
		{
			ID:           "r2",
			Title:        "Stir Fry",
			Category:     "Asian",
			ImageURL:     types.StringPtr("http://x"),
			Ingredients:  []string{"vegetables", "soy sauce"},
			Instructions: types.TextInstructions("Fry everything."),
		},
	}
}

func staticRetriever(recipes []types.RawRecipe) Retriever {
	return RetrieverFunc(func(ctx context.Context, q types.RecipeQuery) ([]types.RawRecipe, error) {
		return recipes, nil
	})
}

func TestScreenEndToEnd(t *testing.T) {
	images := config.DefaultImageDefaults()
	screen := NewScreen(staticRetriever(scenarioRecipes()), NewNormalizer(images), nil)
	defer screen.Close()

	view, err := screen.WaitView(waitCtx(t), screen.Set("tacos", AllCategories))
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, view.Status)
	if diff := cmp.Diff([]string{"All", "Mexican", "Asian"}, view.Categories); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, view.Recipes, 1)

	tacos := view.Recipes[0]
	assert.Equal(t, "Tacos", tacos.Title)
	assert.Equal(t, images.ByCategory["Mexican"], tacos.ImageURL)
	assert.Equal(t, "Cook beef\nFill tortillas", tacos.Instructions)
	assert.Equal(t, "bg-teal-100 text-teal-800", tacos.Badge)
	assert.Equal(t, 2, view.Total)
	assert.False(t, view.Empty)

	// Clearing the search shows both, Stir Fry keeping its explicit image
	view, err = screen.WaitView(waitCtx(t), screen.SetSearch(""))
	require.NoError(t, err)
	require.Len(t, view.Recipes, 2)
	assert.Equal(t, "http://x", view.Recipes[1].ImageURL)
	assert.Equal(t, "Fry everything.", view.Recipes[1].Instructions)
}

func TestScreenPredicateDrivesRetrieval(t *testing.T) {
	r := &recordingRetriever{}
	screen := NewScreen(r, NewNormalizer(config.DefaultImageDefaults()), nil)
	defer screen.Close()

	ctx := waitCtx(t)
	_, err := screen.WaitView(ctx, screen.Start())
	require.NoError(t, err)
	_, err = screen.WaitView(ctx, screen.SetCategory("Dessert"))
	require.NoError(t, err)
	_, err = screen.WaitView(ctx, screen.SetSearch("cake"))
	require.NoError(t, err)

	assert.Equal(t, Predicate{Search: "cake", Category: "Dessert"}, screen.Predicate())

	queries := r.Queries()
	require.Len(t, queries, 3)
	assert.Nil(t, queries[0].Category)
	assert.Nil(t, queries[0].Search)
	assert.Equal(t, "Dessert", queries[1].CategoryValue())
	assert.Nil(t, queries[1].Search)
	assert.Equal(t, "cake", queries[2].SearchValue())
	assert.Equal(t, "Dessert", queries[2].CategoryValue())
}

func TestScreenClientFilterAppliesOverServerResults(t *testing.T) {
	// A data service that ignores parameters returns everything; the
	// client pass still narrows the cards.
	screen := NewScreen(staticRetriever(scenarioRecipes()), NewNormalizer(config.DefaultImageDefaults()), nil)
	defer screen.Close()

	view, err := screen.WaitView(waitCtx(t), screen.SetCategory("Asian"))
	require.NoError(t, err)
	require.Len(t, view.Recipes, 1)
	assert.Equal(t, "Stir Fry", view.Recipes[0].Title)
	assert.Equal(t, []string{"All", "Mexican", "Asian"}, view.Categories)
}

func TestScreenEmptyState(t *testing.T) {
	screen := NewScreen(staticRetriever(scenarioRecipes()), NewNormalizer(config.DefaultImageDefaults()), nil)
	defer screen.Close()

	view, err := screen.WaitView(waitCtx(t), screen.SetSearch("lasagna"))
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, view.Status)
	assert.True(t, view.Empty)
	assert.Equal(t, EmptyMessage, view.Message)
	assert.Empty(t, view.Error)
	assert.NotNil(t, view.Recipes)
}

func TestScreenErrorState(t *testing.T) {
	r := RetrieverFunc(func(ctx context.Context, q types.RecipeQuery) ([]types.RawRecipe, error) {
		return nil, &RetrievalError{Message: "Failed to fetch recipes"}
	})
	screen := NewScreen(r, NewNormalizer(config.DefaultImageDefaults()), nil)
	defer screen.Close()

	view, err := screen.WaitView(waitCtx(t), screen.Start())
	require.NoError(t, err)
	assert.Equal(t, StatusError, view.Status)
	assert.Equal(t, "Failed to fetch recipes", view.Error)
	assert.False(t, view.Empty)
	assert.Equal(t, []string{"All"}, view.Categories)
}

func TestScreenLoadingState(t *testing.T) {
	r := RetrieverFunc(func(ctx context.Context, q types.RecipeQuery) ([]types.RawRecipe, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	screen := NewScreen(r, NewNormalizer(config.DefaultImageDefaults()), nil)
	defer screen.Close()

	screen.Start()
	view := screen.View(context.Background())
	assert.Equal(t, StatusLoading, view.Status)
	assert.Equal(t, LoadingMessage, view.Message)
	assert.Empty(t, view.Recipes)
	assert.Equal(t, []string{"All"}, view.Categories)
}

type prefixSigner struct{}

func (prefixSigner) SignImage(ctx context.Context, ref string) (string, error) {
	if strings.HasPrefix(ref, "s3://broken/") {
		return "", errors.New("access denied")
	}
	if strings.HasPrefix(ref, "s3://") {
		return "https://signed.example.com/" + strings.TrimPrefix(ref, "s3://"), nil
	}
	return ref, nil
}

func TestScreenSignsImages(t *testing.T) {
	recipes := []types.RawRecipe{
		{ID: "1", Title: "Signed", Category: "Salad", ImageURL: types.StringPtr("s3://bucket/salad.png")},
		{ID: "2", Title: "Broken", Category: "Salad", ImageURL: types.StringPtr("s3://broken/salad.png")},
		{ID: "3", Title: "Plain", Category: "Salad"},
	}
	screen := NewScreen(staticRetriever(recipes), NewNormalizer(config.DefaultImageDefaults()), nil,
		WithImageSigner(prefixSigner{}),
		WithBadgePalette(map[string]string{"Salad": "green"}))
	defer screen.Close()

	view, err := screen.WaitView(waitCtx(t), screen.Start())
	require.NoError(t, err)
	require.Len(t, view.Recipes, 3)

	assert.Equal(t, "https://signed.example.com/bucket/salad.png", view.Recipes[0].ImageURL)
	assert.Equal(t, "s3://broken/salad.png", view.Recipes[1].ImageURL)
	assert.Equal(t, config.DefaultImageDefaults().ByCategory["Salad"], view.Recipes[2].ImageURL)
	for _, card := range view.Recipes {
		assert.Equal(t, "green", card.Badge)
	}
}

func TestScreenChanges(t *testing.T) {
	screen := NewScreen(staticRetriever(nil), NewNormalizer(config.DefaultImageDefaults()), nil)
	defer screen.Close()

	ch := screen.Changes()
	screen.Start()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}
}

func TestBadgeFor(t *testing.T) {
	palette := DefaultBadgePalette()
	assert.Equal(t, "bg-blue-100 text-blue-800", BadgeFor("Italian", palette))
	assert.Equal(t, DefaultBadge, BadgeFor("Breakfast", palette))
	assert.Equal(t, DefaultBadge, BadgeFor("Italian", nil))

	palette["Italian"] = "custom"
	assert.Equal(t, "bg-blue-100 text-blue-800", BadgeFor("Italian", DefaultBadgePalette()))
}

func TestScreenViewPairsResultWithIssuingPredicate(t *testing.T) {
	var calls int32
	r := RetrieverFunc(func(ctx context.Context, q types.RecipeQuery) ([]types.RawRecipe, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return scenarioRecipes(), nil
		}
		<-ctx.Done()
		return nil, ctx.Err()
	})
	screen := NewScreen(r, NewNormalizer(config.DefaultImageDefaults()), nil)
	defer screen.Close()

	_, err := screen.WaitView(waitCtx(t), screen.Start())
	require.NoError(t, err)
	settled := screen.orch.Snapshot()

	screen.SetSearch("zzz")

	old := screen.build(context.Background(), settled)
	assert.Equal(t, StatusSuccess, old.Status)
	assert.Equal(t, "", old.Search)
	assert.Len(t, old.Recipes, 2)
	assert.False(t, old.Empty)

	current := screen.View(context.Background())
	assert.Equal(t, StatusLoading, current.Status)
	assert.Equal(t, "zzz", current.Search)
	assert.Equal(t, LoadingMessage, current.Message)
	assert.False(t, current.Empty)
}
