package config

import (
	"fmt"
	"maps"
	"os"

	"gopkg.in/yaml.v3"
)

// GlobalFallbackImage is used when no category-keyed default exists
const GlobalFallbackImage = "https://bakeitwithlove.com/wp-content/uploads/2022/01/Spaghetti-Bolognese-sq.jpg"

var builtinCategoryImages = map[string]string{
	"Italian": "https://bakeitwithlove.com/wp-content/uploads/2022/01/Spaghetti-Bolognese-sq.jpg",
	"Indian":  "https://th.bing.com/th/id/OIP.N_lyNbhtJvQbYPPup_CMlwHaHa?rs=1&pid=ImgDetMain",
	"Salad":   "https://cdn.apartmenttherapy.info/image/upload/f_auto,q_auto:eco,c_fill,g_auto,w_1500/k/Photo/Recipes/2019-10-recipe-brussels-sprouts-caesar-salad/BrusselsSproutCaesarSaladOption1",
	"Dessert": "https://davidscookies.com/cdn/shop/files/cGGK3qk8.jpg?v=1738691344&width=493",
	"Mexican": "https://cookingformysoul.com/wp-content/uploads/2024/04/feat-carne-asada-tacos-min.jpg",
	"Asian":   "https://therecipecritic.com/wp-content/uploads/2019/08/vegetable_stir_fry.jpg",
}

// ImageDefaults maps category labels to default image references.
// Treat it as immutable once built; lookups are exact and case-sensitive.
type ImageDefaults struct {
	Fallback   string            `yaml:"fallback"`
	ByCategory map[string]string `yaml:"categories"`
}

// DefaultImageDefaults returns the built-in category image table
func DefaultImageDefaults() ImageDefaults {
	return ImageDefaults{
		Fallback:   GlobalFallbackImage,
		ByCategory: maps.Clone(builtinCategoryImages),
	}
}

// LoadImageDefaults reads a YAML image table and merges it over the
// built-in defaults. An empty path returns the built-in table.
//
//	fallback: https://example.com/default.jpg
//	categories:
//	  Italian: https://example.com/italian.jpg
func LoadImageDefaults(path string) (ImageDefaults, error) {
	defaults := DefaultImageDefaults()
	if path == "" {
		return defaults, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ImageDefaults{}, fmt.Errorf("failed to read image defaults %s: %w", path, err)
	}

	var file ImageDefaults
	if err := yaml.Unmarshal(data, &file); err != nil {
		return ImageDefaults{}, fmt.Errorf("failed to parse image defaults %s: %w", path, err)
	}

	if file.Fallback != "" {
		defaults.Fallback = file.Fallback
	}
	for category, image := range file.ByCategory {
		if image == "" {
			continue
		}
		defaults.ByCategory[category] = image
	}

	return defaults, nil
}

// Lookup resolves the default image for a category, falling back to the
// table's global image and finally to GlobalFallbackImage.
func (d ImageDefaults) Lookup(category string) string {
	if image, ok := d.ByCategory[category]; ok && image != "" {
		return image
	}
	if d.Fallback != "" {
		return d.Fallback
	}
	return GlobalFallbackImage
}
