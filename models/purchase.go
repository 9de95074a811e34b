package models

import "time"

// PurchaseRecord is an immutable snapshot of a checked-out cart. Lines are
// copied, not referenced, so later cart mutation cannot rewrite history.
type PurchaseRecord struct {
	OrderID     string     `json:"orderid" bson:"orderid"`
	Lines       []CartLine `json:"lines" bson:"lines"`
	Total       float64    `json:"total" bson:"total"`
	PurchasedAt time.Time  `json:"purchasedat" bson:"purchasedat"`
}

// PurchaseHistory is the per-user append-only order list.
type PurchaseHistory struct {
	UserID string           `json:"userid" bson:"userid"`
	Orders []PurchaseRecord `json:"orders" bson:"orders"`
}
