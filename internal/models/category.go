// Package models provides the data structures used throughout the application.
package models

import (
	"fmt"
	"strings"
)

// Category is one of the closed set of spending categories.
type Category string

// Categories
const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryBills         Category = "bills"
	CategoryShopping      Category = "shopping"
	CategoryEntertainment Category = "entertainment"
	CategoryHealth        Category = "health"
	CategoryOther         Category = "other"
)

// AllCategories lists the closed category set in display order.
var AllCategories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryBills,
	CategoryShopping,
	CategoryEntertainment,
	CategoryHealth,
	CategoryOther,
}

var categoryLabels = map[Category]string{
	CategoryFood:          "Food",
	CategoryTransport:     "Transport",
	CategoryBills:         "Bills",
	CategoryShopping:      "Shopping",
	CategoryEntertainment: "Fun",
	CategoryHealth:        "Health",
	CategoryOther:         "Other",
}

// ParseCategory maps a name (case-insensitive, surrounding spaces ignored)
// onto the closed category set.
func ParseCategory(name string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(name)))
	if !c.IsValid() {
		return "", fmt.Errorf("unknown category %q", name)
	}
	return c, nil
}

// IsValid reports whether c belongs to the closed category set.
func (c Category) IsValid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the display label of the category.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Ptr returns a pointer to a copy of c.
func (c Category) Ptr() *Category {
	return &c
}

// CategoryRule is one entry of the ordered category priority list: a category
// and the lowercased substrings that select it.
type CategoryRule struct {
	Name     Category `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// CategoriesConfig represents the structure of the categories YAML file
type CategoriesConfig struct {
	Categories []CategoryRule `yaml:"categories"`
}
