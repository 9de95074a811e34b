package pricing

import (
	"testing"

	"siopa/models"

	"github.com/stretchr/testify/require"
)

func TestDiscountedPrice(t *testing.T) {
	require.Equal(t, 80.00, DiscountedPrice(100, 20))
	require.Equal(t, 100.00, DiscountedPrice(100, 0))
	require.Equal(t, 0.01, DiscountedPrice(1, 99))

	// zero discount is just a round
	require.Equal(t, 19.99, DiscountedPrice(19.99, 0))

	// never negative for discounts in [0,99]
	for d := 0; d <= 99; d++ {
		require.GreaterOrEqual(t, DiscountedPrice(49.99, d), 0.0, "discount %d", d)
	}
}

func TestCartTotal(t *testing.T) {
	lines := []models.CartLine{
		{ProductID: "p1", Price: 100, Quantity: 2},
		{ProductID: "p2", Price: 50, Quantity: 1},
	}
	require.Equal(t, 250.00, CartTotal(lines))

	require.Equal(t, 0.00, CartTotal(nil))
}

func TestCartTotalReorderInvariant(t *testing.T) {
	a := []models.CartLine{
		{Price: 3.33, Quantity: 3},
		{Price: 7.77, Quantity: 1},
		{Price: 0.05, Quantity: 9},
	}
	b := []models.CartLine{a[2], a[0], a[1]}
	require.Equal(t, CartTotal(a), CartTotal(b))
}

func TestCartTotalRoundsOnceAtEnd(t *testing.T) {
	// Each line contributes a third of a cent; rounding per line would
	// drop all of it, rounding the sum keeps the accumulated cent.
	lines := []models.CartLine{
		{Price: 1.0 / 300, Quantity: 1},
		{Price: 1.0 / 300, Quantity: 1},
		{Price: 1.0 / 300, Quantity: 1},
	}
	require.Equal(t, 0.01, CartTotal(lines))
}

func TestDiscountedCartTotal(t *testing.T) {
	lines := []models.CartLine{
		{Price: 100, Discount: 20, Quantity: 2}, // 160
		{Price: 50, Discount: 0, Quantity: 1},   // 50
	}
	require.Equal(t, 210.00, DiscountedCartTotal(lines))
}
