// Package client retrieves recipes from a remote data service over HTTP.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pageza/recipe-finder/backend/internal/discovery"
	"github.com/pageza/recipe-finder/backend/internal/types"
)

const (
	recipesPath    = "/api/v1/recipes"
	usersPath      = "/api/v1/users/"
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 64 << 10
)

// RecipeClient implements discovery.Retriever against GET /api/v1/recipes
// and reads author listings from GET /api/v1/users/:username/recipes
type RecipeClient struct {
	baseURL string
	client  *http.Client
}

// Option configures a RecipeClient
type Option func(*RecipeClient)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(c *http.Client) Option {
	return func(rc *RecipeClient) {
		rc.client = c
	}
}

// NewRecipeClient creates a client for the data service at baseURL
func NewRecipeClient(baseURL string, opts ...Option) *RecipeClient {
	rc := &RecipeClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(rc)
	}
	return rc
}

type recipesResponse struct {
	Recipes []types.RawRecipe `json:"recipes"`
}

type errorResponse struct {
	Error string `json:"error"`
}

var _ discovery.Retriever = (*RecipeClient)(nil)

// Retrieve fetches recipes, sending only the parameters that are present
func (rc *RecipeClient) Retrieve(ctx context.Context, q types.RecipeQuery) ([]types.RawRecipe, error) {
	params := url.Values{}
	if q.Category != nil {
		params.Set("category", *q.Category)
	}
	if q.Search != nil {
		params.Set("search", *q.Search)
	}

	endpoint := rc.baseURL + recipesPath
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var body recipesResponse
	if err := rc.get(ctx, endpoint, &body); err != nil {
		return nil, err
	}
	if body.Recipes == nil {
		body.Recipes = []types.RawRecipe{}
	}
	return body.Recipes, nil
}

// UserRecipes fetches the recipes created by username
func (rc *RecipeClient) UserRecipes(ctx context.Context, username string) (*types.UserRecipes, error) {
	var body types.UserRecipes
	if err := rc.get(ctx, rc.baseURL+usersPath+url.PathEscape(username)+"/recipes", &body); err != nil {
		return nil, err
	}
	if body.Recipes == nil {
		body.Recipes = []types.RawRecipe{}
	}
	return &body, nil
}

// ForUser returns a Retriever over one author's recipes. The query is not
// sent; the discovery screen refines the author's recipes locally.
func (rc *RecipeClient) ForUser(username string) discovery.Retriever {
	return discovery.RetrieverFunc(func(ctx context.Context, q types.RecipeQuery) ([]types.RawRecipe, error) {
		result, err := rc.UserRecipes(ctx, username)
		if err != nil {
			return nil, err
		}
		return result.Recipes, nil
	})
}

func (rc *RecipeClient) get(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := rc.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch recipes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &discovery.RetrievalError{Message: errorMessage(resp)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode recipes: %w", err)
	}
	return nil
}

func errorMessage(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err == nil {
		var body errorResponse
		if json.Unmarshal(data, &body) == nil && body.Error != "" {
			return body.Error
		}
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return fmt.Sprintf("unexpected status %d", resp.StatusCode)
}
