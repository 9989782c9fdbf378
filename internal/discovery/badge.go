package discovery

import "maps"

// DefaultBadge is the badge class for categories without a palette entry
const DefaultBadge = "bg-gray-100 text-gray-800"

var defaultBadgePalette = map[string]string{
	"Italian": "bg-blue-100 text-blue-800",
	"Indian":  "bg-indigo-100 text-indigo-800",
	"Salad":   "bg-cyan-100 text-cyan-800",
	"Dessert": "bg-sky-100 text-sky-800",
	"Mexican": "bg-teal-100 text-teal-800",
	"Asian":   "bg-blue-200 text-blue-900",
}

// DefaultBadgePalette returns a copy of the built-in category badge classes
func DefaultBadgePalette() map[string]string {
	return maps.Clone(defaultBadgePalette)
}

// BadgeFor looks up the badge class for a category in a caller-supplied palette
func BadgeFor(category string, palette map[string]string) string {
	if badge, ok := palette[category]; ok && badge != "" {
		return badge
	}
	return DefaultBadge
}
