package purchases

import (
	"strings"
	"testing"
	"time"

	"siopa/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func checkoutLines() []models.CartLine {
	now := time.Now()
	return []models.CartLine{
		{ProductID: "p1", Name: "Adjustable Bench", Price: 100, Discount: 20, Quantity: 2, AddedAt: now},
		{ProductID: "p2", Name: "Resistance Bands", Price: 25, Discount: 0, Quantity: 2, AddedAt: now},
	}
}

func TestBuildRecordSnapshotsLines(t *testing.T) {
	lines := checkoutLines()
	record := buildRecord(lines)

	// Mutating the cart after checkout must not reach the recorded order.
	lines[0].Quantity = 99
	lines[0].Name = "tampered"
	lines[1].Price = 0.01

	assert.Equal(t, 2, record.Lines[0].Quantity)
	assert.Equal(t, "Adjustable Bench", record.Lines[0].Name)
	assert.Equal(t, 25.0, record.Lines[1].Price)
	assert.Equal(t, 210.00, record.Total)
}

func TestBuildRecordChargesDiscountedTotal(t *testing.T) {
	record := buildRecord(checkoutLines())

	// 2 x 100 at 20% off is 160, plus 2 x 25 undiscounted.
	assert.Equal(t, 210.00, record.Total)
	assert.True(t, strings.HasPrefix(record.OrderID, "ord"))
	assert.False(t, record.PurchasedAt.IsZero())
}

func TestStockDecrementNeverBelowZero(t *testing.T) {
	filter, update := stockDecrement(models.CartLine{ProductID: "p1", Quantity: 3})

	// The filter only matches while at least the requested quantity remains,
	// so the decrement cannot drive stock negative.
	assert.Equal(t, "p1", filter["productid"])
	assert.Equal(t, bson.M{"$gte": 3}, filter["stock"])
	assert.Equal(t, bson.M{"stock": -3, "sold": 3}, update["$inc"])
}
