package discovery

import (
	"context"
	"errors"
	"fmt"

	"github.com/pageza/recipe-finder/backend/internal/types"
)

// Status is the retrieval state exposed to the rendering layer
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

var statusNames = map[Status]string{
	StatusIdle:    "idle",
	StatusLoading: "loading",
	StatusSuccess: "success",
	StatusError:   "error",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalText encodes the status by name
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name
func (s *Status) UnmarshalText(text []byte) error {
	for status, name := range statusNames {
		if name == string(text) {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

// Retriever issues a parameterized recipe retrieval against the data service
type Retriever interface {
	Retrieve(ctx context.Context, q types.RecipeQuery) ([]types.RawRecipe, error)
}

// RetrieverFunc adapts a function to the Retriever interface
type RetrieverFunc func(ctx context.Context, q types.RecipeQuery) ([]types.RawRecipe, error)

// Retrieve calls f(ctx, q)
func (f RetrieverFunc) Retrieve(ctx context.Context, q types.RecipeQuery) ([]types.RawRecipe, error) {
	return f(ctx, q)
}

// RetrievalError is the single error kind surfaced to the rendering layer.
// Message carries the data service's text verbatim.
type RetrievalError struct {
	Message string
}

func (e *RetrievalError) Error() string {
	return e.Message
}

// AsRetrievalError converts err into a RetrievalError, keeping an existing
// one found in the chain.
func AsRetrievalError(err error) *RetrievalError {
	var rerr *RetrievalError
	if errors.As(err, &rerr) {
		return rerr
	}
	return &RetrievalError{Message: err.Error()}
}

// ErrSuperseded is returned by Wait when a newer retrieval replaced the awaited one
var ErrSuperseded = errors.New("retrieval superseded by a newer request")

// State is a snapshot of the orchestrator. Predicate is the search and
// category that issued retrieval Seq.
type State struct {
	Status    Status
	Seq       uint64
	Predicate Predicate
	Query     types.RecipeQuery
	Recipes   []types.RawRecipe
	Err       *RetrievalError
}

// Settled reports whether the state is not waiting on a retrieval
func (s State) Settled() bool {
	return s.Status != StatusLoading
}
