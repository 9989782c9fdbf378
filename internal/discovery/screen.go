package discovery

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/pageza/recipe-finder/backend/internal/types"
)

// ImageSigner turns a stored image reference into a URL a client can load.
// Implementations return the reference unchanged when it needs no signing.
type ImageSigner interface {
	SignImage(ctx context.Context, ref string) (string, error)
}

// ScreenOption configures a Screen
type ScreenOption func(*Screen)

// WithImageSigner signs image references after normalization
func WithImageSigner(signer ImageSigner) ScreenOption {
	return func(s *Screen) {
		s.signer = signer
	}
}

// WithBadgePalette overrides the category badge palette
func WithBadgePalette(palette map[string]string) ScreenOption {
	return func(s *Screen) {
		s.palette = palette
	}
}

// Screen owns the filter predicate and drives the orchestrator from it.
// Every predicate change issues a new retrieval.
type Screen struct {
	orch       *Orchestrator
	normalizer *Normalizer
	signer     ImageSigner
	palette    map[string]string
	logger     *zap.Logger

	mu   sync.Mutex
	pred Predicate
}

// NewScreen creates a screen with an empty search and the "All" category
func NewScreen(retriever Retriever, normalizer *Normalizer, logger *zap.Logger, opts ...ScreenOption) *Screen {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Screen{
		orch:       NewOrchestrator(retriever, logger),
		normalizer: normalizer,
		palette:    DefaultBadgePalette(),
		logger:     logger,
		pred:       NewPredicate("", AllCategories),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start issues the initial retrieval for the current predicate
func (s *Screen) Start() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orch.Update(s.pred.Search, s.pred.Category)
}

// SetSearch changes the search text and re-issues retrieval
func (s *Screen) SetSearch(search string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pred.Search = search
	return s.orch.Update(s.pred.Search, s.pred.Category)
}

// SetCategory changes the selected category and re-issues retrieval
func (s *Screen) SetCategory(category string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pred = NewPredicate(s.pred.Search, category)
	return s.orch.Update(s.pred.Search, s.pred.Category)
}

// Set replaces both predicate fields and re-issues retrieval once
func (s *Screen) Set(search, category string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pred = NewPredicate(search, category)
	return s.orch.Update(s.pred.Search, s.pred.Category)
}

// Predicate returns the current filter predicate
func (s *Screen) Predicate() Predicate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pred
}

// Changes returns a channel closed on the next retrieval state transition
func (s *Screen) Changes() <-chan struct{} {
	return s.orch.Changes()
}

// View renders the current state with the predicate that issued it
func (s *Screen) View(ctx context.Context) View {
	return s.build(ctx, s.orch.Snapshot())
}

// WaitView waits for retrieval seq to settle and renders it
func (s *Screen) WaitView(ctx context.Context, seq uint64) (View, error) {
	st, err := s.orch.Wait(ctx, seq)
	if err != nil {
		return s.build(ctx, st), err
	}
	return s.build(ctx, st), nil
}

// Close stops any in-flight retrieval
func (s *Screen) Close() {
	s.orch.Close()
}

func (s *Screen) build(ctx context.Context, st State) View {
	recipes := s.normalizer.NormalizeAll(st.Recipes)
	if s.signer != nil {
		s.signImages(ctx, recipes)
	}
	return Assemble(st, recipes, s.palette)
}

// signImages rewrites image references in place. A failed signature keeps
// the unsigned reference so every card still has an image.
func (s *Screen) signImages(ctx context.Context, recipes []types.DisplayRecipe) {
	for i := range recipes {
		signed, err := s.signer.SignImage(ctx, recipes[i].ImageURL)
		if err != nil {
			s.logger.Warn("Failed to sign recipe image",
				zap.String("recipe_id", recipes[i].ID),
				zap.Error(err))
			continue
		}
		if signed != "" {
			recipes[i].ImageURL = signed
		}
	}
}
