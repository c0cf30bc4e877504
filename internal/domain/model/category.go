package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory is returned when a category is outside the supported set.
var ErrUnknownCategory = errors.New("unknown category")

// Category is a topical filter for requested content.
type Category string

const (
	CategoryWorld         Category = "World"
	CategoryPolitics      Category = "Politics"
	CategoryTechnology    Category = "Technology"
	CategoryBusiness      Category = "Business"
	CategorySports        Category = "Sports"
	CategoryEntertainment Category = "Entertainment"
)

// Categories lists the supported categories in display order.
var Categories = []Category{
	CategoryWorld,
	CategoryPolitics,
	CategoryTechnology,
	CategoryBusiness,
	CategorySports,
	CategoryEntertainment,
}

// SupportedSources is the fixed allowlist of outlets the provider may draw from.
var SupportedSources = []string{
	"Al Jazeera",
	"BBC",
	"India Today",
	"India Times",
	"New York Times",
}

// Valid reports whether c is one of the supported categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory matches raw against the supported categories, ignoring case.
func ParseCategory(raw string) (Category, error) {
	raw = strings.TrimSpace(raw)
	for _, known := range Categories {
		if strings.EqualFold(raw, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, raw)
}
