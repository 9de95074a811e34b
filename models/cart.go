package models

import "time"

// CartLine is a (product, quantity) pair within a cart. Price and discount
// are copied from the product at add time so totals can be derived without
// a join; the server still recomputes totals on every read.
type CartLine struct {
	ProductID string    `json:"productid" bson:"productid"`
	Name      string    `json:"name" bson:"name"`
	Price     float64   `json:"price" bson:"price"`
	Discount  int       `json:"discount" bson:"discount"`
	Quantity  int       `json:"quantity" bson:"quantity"`
	AddedAt   time.Time `json:"addedat" bson:"addedat"`
}

// Cart holds the single active cart document for a user.
type Cart struct {
	UserID    string     `json:"userid" bson:"userid"`
	Lines     []CartLine `json:"lines" bson:"lines"`
	Total     float64    `json:"total" bson:"total"`
	UpdatedAt time.Time  `json:"updatedat" bson:"updatedat"`
}

// Favourites is the per-user set of favourited product IDs.
type Favourites struct {
	UserID   string   `json:"userid" bson:"userid"`
	Products []string `json:"products" bson:"products"`
}
