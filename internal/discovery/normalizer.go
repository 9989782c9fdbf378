// Package discovery implements the recipe search pipeline: retrieval with
// out-of-order protection, normalization into display records, category
// derivation and client-side refinement.
package discovery

import (
	"github.com/pageza/recipe-finder/backend/config"
	"github.com/pageza/recipe-finder/backend/internal/types"
)

// DefaultStepSeparator joins step-list instructions into one display string
const DefaultStepSeparator = "\n"

// Normalizer maps raw recipes into display recipes
type Normalizer struct {
	Images    config.ImageDefaults
	Separator string
}

// NewNormalizer creates a normalizer over an image table using the default step separator
func NewNormalizer(images config.ImageDefaults) *Normalizer {
	return &Normalizer{
		Images:    images,
		Separator: DefaultStepSeparator,
	}
}

// Normalize converts a raw recipe into a display recipe. It never fails:
// optional fields are defaulted and the image reference is always resolved.
func (n *Normalizer) Normalize(raw types.RawRecipe) types.DisplayRecipe {
	ingredients := make([]string, len(raw.Ingredients))
	copy(ingredients, raw.Ingredients)

	description := ""
	if raw.Description != nil {
		description = *raw.Description
	}

	return types.DisplayRecipe{
		ID:           raw.ID,
		Title:        raw.Title,
		Description:  description,
		Category:     raw.Category,
		Ingredients:  ingredients,
		Instructions: raw.Instructions.Flatten(n.Separator),
		ImageURL:     n.resolveImage(raw),
		CreatedBy:    raw.CreatedBy.Username,
	}
}

// NormalizeAll normalizes every record, preserving order. The result is never nil.
func (n *Normalizer) NormalizeAll(raws []types.RawRecipe) []types.DisplayRecipe {
	out := make([]types.DisplayRecipe, 0, len(raws))
	for _, raw := range raws {
		out = append(out, n.Normalize(raw))
	}
	return out
}

// resolveImage picks the explicit image, then the category default, then the global fallback
func (n *Normalizer) resolveImage(raw types.RawRecipe) string {
	if raw.ImageURL != nil && *raw.ImageURL != "" {
		return *raw.ImageURL
	}
	return n.Images.Lookup(raw.Category)
}
