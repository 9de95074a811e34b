// Package pricing holds the storefront's money arithmetic.
package pricing

import (
	"math"

	"siopa/models"
)

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// DiscountedPrice applies a whole-percent discount to a unit price.
// Callers are expected to keep discountPercent in [0,99]; values outside
// that range are applied as given.
func DiscountedPrice(price float64, discountPercent int) float64 {
	return Round2(price * (1 - float64(discountPercent)/100))
}

// CartTotal sums price x quantity over every line. Rounding happens once,
// on the final sum, so per-line fractions of a cent are not lost.
func CartTotal(lines []models.CartLine) float64 {
	var total float64
	for _, line := range lines {
		total += line.Price * float64(line.Quantity)
	}
	return Round2(total)
}

// DiscountedCartTotal is CartTotal with each line's own discount applied.
// Used for checkout, where the charged amount honours per-product discounts.
func DiscountedCartTotal(lines []models.CartLine) float64 {
	var total float64
	for _, line := range lines {
		total += line.Price * (1 - float64(line.Discount)/100) * float64(line.Quantity)
	}
	return Round2(total)
}
