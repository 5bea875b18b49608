package domain

import "strings"

// Product is the catalog entry whose reviews are scored.
type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// NormalizeCategory returns the lookup key for a category tag.
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}
