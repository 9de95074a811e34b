// Package catalog implements the in-memory filtering and search logic the
// storefront's browse pages are built on.
package catalog

import (
	"strings"

	"siopa/models"
)

// Filter describes one browse query. Empty Categories or Conditions act as
// wildcards; the numeric bounds are inclusive on both ends.
type Filter struct {
	Categories []string `json:"categories"`
	Conditions []string `json:"conditions"`
	MinRating  float64  `json:"min_rating"`
	MaxRating  float64  `json:"max_rating"`
	MinPrice   float64  `json:"min_price"`
	MaxPrice   float64  `json:"max_price"`
}

// MatchingProducts returns the products passing every clause of the filter.
func MatchingProducts(products []models.Product, f Filter) []models.Product {
	matched := make([]models.Product, 0, len(products))
	for _, p := range products {
		if matches(p, f) {
			matched = append(matched, p)
		}
	}
	return matched
}

func matches(p models.Product, f Filter) bool {
	if len(f.Categories) > 0 && !hasAnyCategory(p, f.Categories) {
		return false
	}
	if len(f.Conditions) > 0 && !containsFold(f.Conditions, p.Condition()) {
		return false
	}
	if p.Rating < f.MinRating || p.Rating > f.MaxRating {
		return false
	}
	if p.Price < f.MinPrice || p.Price > f.MaxPrice {
		return false
	}
	return true
}

func hasAnyCategory(p models.Product, wanted []string) bool {
	for _, tag := range p.Category {
		if containsFold(wanted, tag) {
			return true
		}
	}
	return false
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}

// ProductsWithPrefix finds products whose name starts with the query,
// case-insensitively. An empty prefix matches nothing: the search box being
// empty means "no search", not "everything".
func ProductsWithPrefix(prefix string, products []models.Product) []models.Product {
	matched := []models.Product{}
	if prefix == "" {
		return matched
	}
	lower := strings.ToLower(prefix)
	for _, p := range products {
		if strings.HasPrefix(strings.ToLower(p.Name), lower) {
			matched = append(matched, p)
		}
	}
	return matched
}

// UsersWithPrefix is ProductsWithPrefix over "first last" names.
func UsersWithPrefix(prefix string, users []models.User) []models.User {
	matched := []models.User{}
	if prefix == "" {
		return matched
	}
	lower := strings.ToLower(prefix)
	for _, u := range users {
		if strings.HasPrefix(strings.ToLower(u.FullName()), lower) {
			matched = append(matched, u)
		}
	}
	return matched
}

// CountCategoriesAndConditions tallies how many products carry each category
// tag and each condition label ("new"/"used"), for the filter checkboxes.
// A product counts once per tag it carries and exactly once per condition.
// Tags are bucketed case-insensitively under their lowercase form.
func CountCategoriesAndConditions(products []models.Product) map[string]int {
	counts := make(map[string]int)
	for _, p := range products {
		for _, tag := range p.Category {
			counts[strings.ToLower(tag)]++
		}
		counts[p.Condition()]++
	}
	return counts
}
