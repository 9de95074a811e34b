package catalog

import (
	"testing"

	"siopa/models"

	"github.com/stretchr/testify/require"
)

func sampleProducts() []models.Product {
	return []models.Product{
		{ProductID: "p1", Name: "Olympic Barbell", Category: []string{"Barbells", "strength"}, BrandNew: true, Price: 250, Rating: 4.5},
		{ProductID: "p2", Name: "Bumper Plate Set", Category: []string{"plates"}, BrandNew: false, Price: 180, Rating: 4.0},
		{ProductID: "p3", Name: "Kettlebell 16kg", Category: []string{"kettlebells"}, BrandNew: true, Price: 45, Rating: 3.5},
		{ProductID: "p4", Name: "barbell collars", Category: []string{"barbells", "accessories"}, BrandNew: false, Price: 15, Rating: 5.0},
	}
}

func wideOpen() Filter {
	return Filter{MinRating: 0, MaxRating: 5, MinPrice: 0, MaxPrice: 1000}
}

func TestEmptyFiltersMatchEverything(t *testing.T) {
	products := sampleProducts()
	got := MatchingProducts(products, wideOpen())
	require.Equal(t, products, got)
}

func TestCategoryFilterIsCaseInsensitive(t *testing.T) {
	f := wideOpen()
	f.Categories = []string{"barbells"}

	got := MatchingProducts(sampleProducts(), f)
	require.Len(t, got, 2)
	for _, p := range got {
		require.Contains(t, []string{"p1", "p4"}, p.ProductID)
	}
}

func TestConditionFilter(t *testing.T) {
	f := wideOpen()
	f.Conditions = []string{"USED"}

	got := MatchingProducts(sampleProducts(), f)
	require.Len(t, got, 2)
	for _, p := range got {
		require.False(t, p.BrandNew)
	}
}

func TestPriceAndRatingBoundsAreInclusive(t *testing.T) {
	f := wideOpen()
	f.MinPrice, f.MaxPrice = 45, 180
	f.MinRating, f.MaxRating = 3.5, 4.0

	got := MatchingProducts(sampleProducts(), f)
	require.Len(t, got, 2) // p2 and p3 sit exactly on the bounds
}

func TestFilterClausesCombine(t *testing.T) {
	f := wideOpen()
	f.Categories = []string{"barbells"}
	f.MaxPrice = 100

	got := MatchingProducts(sampleProducts(), f)
	require.Len(t, got, 1)
	require.Equal(t, "p4", got[0].ProductID)
}

func TestProductPrefixSearch(t *testing.T) {
	products := sampleProducts()

	// empty prefix means no search, not match-all
	require.Empty(t, ProductsWithPrefix("", products))

	got := ProductsWithPrefix("BARB", products)
	require.Len(t, got, 1)
	require.Equal(t, "p4", got[0].ProductID)

	// prefix only, not substring
	require.Empty(t, ProductsWithPrefix("plate set", products))
}

func TestUserPrefixSearch(t *testing.T) {
	users := []models.User{
		{UserID: "u1", FirstName: "Aoife", LastName: "Nolan"},
		{UserID: "u2", FirstName: "Sean", LastName: "Murphy"},
	}

	require.Empty(t, UsersWithPrefix("", users))

	got := UsersWithPrefix("aoife n", users)
	require.Len(t, got, 1)
	require.Equal(t, "u1", got[0].UserID)

	// matches the "first last" concatenation only from the start
	require.Empty(t, UsersWithPrefix("Nolan", users))
}

func TestCountCategoriesAndConditions(t *testing.T) {
	counts := CountCategoriesAndConditions(sampleProducts())

	require.Equal(t, 2, counts["barbells"])
	require.Equal(t, 1, counts["strength"])
	require.Equal(t, 1, counts["plates"])
	require.Equal(t, 2, counts["new"])
	require.Equal(t, 2, counts["used"])
}
