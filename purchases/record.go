package purchases

import (
	"strconv"
	"time"

	"siopa/models"
	"siopa/pricing"
	"siopa/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// buildRecord snapshots the cart lines into a purchase record. The copy is
// deliberate: edits to the cart after checkout must never reach a recorded
// order.
func buildRecord(lines []models.CartLine) models.PurchaseRecord {
	return models.PurchaseRecord{
		OrderID:     "ord" + strconv.FormatInt(time.Now().UnixNano()%1e9, 10) + utils.GenerateName(4),
		Lines:       append([]models.CartLine(nil), lines...),
		Total:       pricing.DiscountedCartTotal(lines),
		PurchasedAt: time.Now(),
	}
}

// stockDecrement builds the guarded update for one checkout line. The filter
// only matches while enough stock remains, so the decrement can never take
// stock below zero and two concurrent checkouts cannot both claim the last
// unit.
func stockDecrement(line models.CartLine) (filter, update bson.M) {
	filter = bson.M{"productid": line.ProductID, "stock": bson.M{"$gte": line.Quantity}}
	update = bson.M{"$inc": bson.M{"stock": -line.Quantity, "sold": line.Quantity}}
	return filter, update
}
