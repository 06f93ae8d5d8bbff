package model

import "strings"

// Category groups tasks by area of life.
type Category string

const (
	CategoryWork  Category = "WORK"
	CategoryHome  Category = "HOME"
	CategoryStudy Category = "STUDY"
	CategoryOther Category = "OTHER"
)

// DefaultCategory is substituted wherever a category is absent or
// unrecognized.
const DefaultCategory = CategoryOther

// Categories lists all categories in display order.
var Categories = []Category{CategoryWork, CategoryHome, CategoryStudy, CategoryOther}

type categoryMeta struct {
	displayName string
	color       string
}

var categoryInfo = map[Category]categoryMeta{
	CategoryWork:  {"Работа", "#3D5AFE"},
	CategoryHome:  {"Дом", "#FF4081"},
	CategoryStudy: {"Учёба", "#6200EA"},
	CategoryOther: {"Другое", "#757575"},
}

// DisplayName returns the human-readable name shown in the UI.
func (c Category) DisplayName() string { return categoryInfo[c].displayName }

// Color returns the hex color associated with the category.
func (c Category) Color() string { return categoryInfo[c].color }

// Next cycles to the following category, wrapping around.
func (c Category) Next() Category {
	for i, cat := range Categories {
		if cat == c {
			return Categories[(i+1)%len(Categories)]
		}
	}
	return DefaultCategory
}

// ParseCategory resolves a category from either its constant name
// ("WORK") or its display name ("Работа"), case-insensitively.
// Anything unrecognized, including the empty string, resolves to
// DefaultCategory rather than an error.
func ParseCategory(s string) Category {
	lower := strings.ToLower(strings.TrimSpace(s))
	for c, meta := range categoryInfo {
		if lower == strings.ToLower(string(c)) || lower == strings.ToLower(meta.displayName) {
			return c
		}
	}
	return DefaultCategory
}

// CategoryFromDisplayName resolves a category by display name only,
// case-insensitively, falling back to DefaultCategory.
func CategoryFromDisplayName(name string) Category {
	lower := strings.ToLower(strings.TrimSpace(name))
	for c, meta := range categoryInfo {
		if lower == strings.ToLower(meta.displayName) {
			return c
		}
	}
	return DefaultCategory
}
