package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/recipe-finder/backend/internal/discovery"
	"github.com/pageza/recipe-finder/backend/internal/testdb"
	"github.com/pageza/recipe-finder/backend/internal/types"
)

type countingRetriever struct {
	calls   atomic.Int32
	recipes []types.RawRecipe
	err     error
	entered chan struct{}
	release chan struct{}
}

func (c *countingRetriever) Retrieve(ctx context.Context, q types.RecipeQuery) ([]types.RawRecipe, error) {
	c.calls.Add(1)
	if c.entered != nil {
		c.entered <- struct{}{}
	}
	if c.release != nil {
		<-c.release
	}
	if c.err != nil {
		return nil, c.err
	}
	return c.recipes, nil
}

func sampleRecipes() []types.RawRecipe {
	return []types.RawRecipe{
		{ID: "1", Title: "Tacos", Category: "Mexican", Ingredients: []string{"tortilla"}, Instructions: types.TextInstructions("Fill.")},
		{ID: "2", Title: "Stir Fry", Category: "Asian", Ingredients: []string{"rice"}, Instructions: types.StepInstructions("Chop", "Fry")},
	}
}

func TestKeyDistinguishesAbsentFromEmpty(t *testing.T) {
	r := NewRetriever(&countingRetriever{}, nil, time.Minute, zap.NewNop())

	absent := r.Key(types.RecipeQuery{})
	empty := r.Key(types.RecipeQuery{Search: types.StringPtr("")})
	cat := r.Key(types.RecipeQuery{Category: types.StringPtr("Asian")})

	assert.NotEqual(t, absent, empty)
	assert.NotEqual(t, absent, cat)
	assert.Equal(t, cat, r.Key(types.RecipeQuery{Category: types.StringPtr("Asian")}))
}

func TestRetrieveWithoutRedisPassesThrough(t *testing.T) {
	upstream := &countingRetriever{recipes: sampleRecipes()}
	r := NewRetriever(upstream, nil, time.Minute, nil)

	for i := 0; i < 2; i++ {
		got, err := r.Retrieve(context.Background(), types.RecipeQuery{})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	}
	assert.Equal(t, int32(2), upstream.calls.Load())
}

func TestRetrieveSurfacesUpstreamError(t *testing.T) {
	upstream := &countingRetriever{err: &discovery.RetrievalError{Message: "Failed to fetch recipes"}}
	r := NewRetriever(upstream, nil, time.Minute, nil)

	_, err := r.Retrieve(context.Background(), types.RecipeQuery{})
	var rerr *discovery.RetrievalError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, "Failed to fetch recipes", rerr.Message)
}

func TestCancelledCallerDoesNotFailSharedRetrieval(t *testing.T) {
	upstream := &countingRetriever{
		recipes: sampleRecipes(),
		entered: make(chan struct{}, 2),
		release: make(chan struct{}),
	}
	r := NewRetriever(upstream, nil, 0, nil)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := r.Retrieve(ctx, types.RecipeQuery{})
		errCh <- err
	}()
	<-upstream.entered
	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)

	type result struct {
		recipes []types.RawRecipe
		err     error
	}
	resCh := make(chan result, 1)
	go func() {
		got, err := r.Retrieve(context.Background(), types.RecipeQuery{})
		resCh <- result{got, err}
	}()
	close(upstream.release)

	res := <-resCh
	require.NoError(t, res.err)
	assert.Len(t, res.recipes, 2)
}

func TestRetrieveCachesInRedis(t *testing.T) {
	client := testdb.SetupRedis(t)
	ctx := context.Background()

	upstream := &countingRetriever{recipes: sampleRecipes()}
	r := NewRetriever(upstream, client, time.Minute, zap.NewNop())

	first, err := r.Retrieve(ctx, types.RecipeQuery{})
	require.NoError(t, err)
	second, err := r.Retrieve(ctx, types.RecipeQuery{})
	require.NoError(t, err)

	assert.Equal(t, int32(1), upstream.calls.Load())
	assert.Equal(t, first[1].Instructions.Steps, second[1].Instructions.Steps)
	assert.Equal(t, "Tacos", second[0].Title)

	ttl, err := client.TTL(ctx, r.Key(types.RecipeQuery{})).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	_, err = r.Retrieve(ctx, types.RecipeQuery{Category: types.StringPtr("Asian")})
	require.NoError(t, err)
	assert.Equal(t, int32(2), upstream.calls.Load())

	require.NoError(t, r.Invalidate(ctx))
	_, err = r.Retrieve(ctx, types.RecipeQuery{})
	require.NoError(t, err)
	assert.Equal(t, int32(3), upstream.calls.Load())
}

func TestRetrieveDoesNotCacheErrors(t *testing.T) {
	client := testdb.SetupRedis(t)
	ctx := context.Background()

	upstream := &countingRetriever{err: errors.New("boom")}
	r := NewRetriever(upstream, client, time.Minute, zap.NewNop())

	_, err := r.Retrieve(ctx, types.RecipeQuery{})
	require.Error(t, err)

	upstream.err = nil
	upstream.recipes = sampleRecipes()
	got, err := r.Retrieve(ctx, types.RecipeQuery{})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, int32(2), upstream.calls.Load())
}

func TestInvalidateStartsFreshFlight(t *testing.T) {
	upstream := &countingRetriever{
		recipes: sampleRecipes(),
		entered: make(chan struct{}, 2),
		release: make(chan struct{}),
	}
	r := NewRetriever(upstream, nil, time.Minute, nil)

	errCh := make(chan error, 2)
	retrieve := func() {
		_, err := r.Retrieve(context.Background(), types.RecipeQuery{})
		errCh <- err
	}

	go retrieve()
	<-upstream.entered
	require.NoError(t, r.Invalidate(context.Background()))

	go retrieve()
	select {
	case <-upstream.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("retrieval after invalidation joined the earlier flight")
	}
	close(upstream.release)

	require.NoError(t, <-errCh)
	require.NoError(t, <-errCh)
	assert.Equal(t, int32(2), upstream.calls.Load())
}

func TestInvalidateDuringFlightSkipsStore(t *testing.T) {
	client := testdb.SetupRedis(t)
	ctx := context.Background()

	upstream := &countingRetriever{
		recipes: sampleRecipes(),
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	r := NewRetriever(upstream, client, time.Minute, zap.NewNop())

	errCh := make(chan error, 1)
	go func() {
		_, err := r.Retrieve(ctx, types.RecipeQuery{})
		errCh <- err
	}()
	<-upstream.entered
	require.NoError(t, r.Invalidate(ctx))
	close(upstream.release)
	require.NoError(t, <-errCh)

	n, err := client.Exists(ctx, r.Key(types.RecipeQuery{})).Result()
	require.NoError(t, err)
	assert.Zero(t, n)

	upstream.entered = nil
	_, err = r.Retrieve(ctx, types.RecipeQuery{})
	require.NoError(t, err)
	assert.Equal(t, int32(2), upstream.calls.Load())
}
