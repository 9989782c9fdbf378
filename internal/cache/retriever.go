// Package cache decorates a recipe Retriever with a Redis response cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/pageza/recipe-finder/backend/internal/discovery"
	"github.com/pageza/recipe-finder/backend/internal/types"
)

const defaultKeyPrefix = "recipes:query"

// Retriever caches successful retrievals in Redis for a fixed TTL. Concurrent
// identical queries share one upstream call. Redis failures fall through to
// the wrapped retriever; upstream errors are never cached.
type Retriever struct {
	next   discovery.Retriever
	redis  *redis.Client
	ttl    time.Duration
	prefix string
	logger *zap.Logger
	group  singleflight.Group

	// gen advances on every Invalidate. Flights started under an older
	// generation neither share with newer callers nor write to the cache.
	gen atomic.Uint64
}

// NewRetriever wraps next with a cache. A zero ttl disables caching but keeps
// request coalescing.
func NewRetriever(next discovery.Retriever, client *redis.Client, ttl time.Duration, logger *zap.Logger) *Retriever {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Retriever{
		next:   next,
		redis:  client,
		ttl:    ttl,
		prefix: defaultKeyPrefix,
		logger: logger,
	}
}

var _ discovery.Retriever = (*Retriever)(nil)

// Retrieve returns the cached result for q or fetches and stores it
func (r *Retriever) Retrieve(ctx context.Context, q types.RecipeQuery) ([]types.RawRecipe, error) {
	key := r.Key(q)

	if recipes, ok := r.lookup(ctx, key); ok {
		return recipes, nil
	}

	// The shared call outlives any single caller so a cancelled request
	// cannot fail the callers that joined it.
	flightCtx := context.WithoutCancel(ctx)
	gen := r.gen.Load()
	ch := r.group.DoChan(fmt.Sprintf("%s#%d", key, gen), func() (interface{}, error) {
		recipes, err := r.next.Retrieve(flightCtx, q)
		if err != nil {
			return nil, err
		}
		r.store(flightCtx, key, gen, recipes)
		return recipes, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			r.logger.Debug("shared in-flight retrieval", zap.String("key", key))
		}
		return res.Val.([]types.RawRecipe), nil
	}
}

// Key returns the cache key for q. Absent and empty parameters are distinct.
func (r *Retriever) Key(q types.RecipeQuery) string {
	return fmt.Sprintf("%s:c=%s:s=%s", r.prefix, param(q.Category), param(q.Search))
}

// Invalidate drops every cached query result. Retrievals already in flight
// still answer their callers but are not cached.
func (r *Retriever) Invalidate(ctx context.Context) error {
	r.gen.Add(1)
	if r.redis == nil {
		return nil
	}
	iter := r.redis.Scan(ctx, 0, r.prefix+":*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.redis.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}
	return nil
}

func (r *Retriever) lookup(ctx context.Context, key string) ([]types.RawRecipe, bool) {
	if r.redis == nil || r.ttl <= 0 {
		return nil, false
	}

	data, err := r.redis.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		r.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	var recipes []types.RawRecipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		r.logger.Warn("discarding corrupt cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if recipes == nil {
		recipes = []types.RawRecipe{}
	}
	return recipes, true
}

// store caches recipes fetched under generation gen. A write that races
// with Invalidate is removed again.
func (r *Retriever) store(ctx context.Context, key string, gen uint64, recipes []types.RawRecipe) {
	if r.redis == nil || r.ttl <= 0 || r.gen.Load() != gen {
		return
	}

	data, err := json.Marshal(recipes)
	if err != nil {
		r.logger.Warn("failed to encode cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := r.redis.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		return
	}
	if r.gen.Load() != gen {
		if err := r.redis.Del(ctx, key).Err(); err != nil {
			r.logger.Warn("failed to drop stale cache entry", zap.String("key", key), zap.Error(err))
		}
	}
}

func param(v *string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%q", *v)
}
