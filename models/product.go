package models

import "time"

// Product is a catalog entry. Discount is a whole percentage in [0,99];
// the price shown to buyers is derived from Price and Discount, never stored.
type Product struct {
	ProductID   string    `json:"productid" bson:"productid"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Price       float64   `json:"price" bson:"price"`
	Discount    int       `json:"discount" bson:"discount"`
	Stock       int       `json:"stock" bson:"stock"`
	BrandNew    bool      `json:"brand_new" bson:"brand_new"`
	Category    []string  `json:"category" bson:"category"`
	Images      []string  `json:"images" bson:"images"`
	Thumbnails  []string  `json:"thumbnails,omitempty" bson:"thumbnails,omitempty"`
	Rating      float64   `json:"rating" bson:"rating"`
	ReviewCount int       `json:"no_of_reviews" bson:"no_of_reviews"`
	Sold        int       `json:"sold" bson:"sold"`
	CreatedBy   string    `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// Condition returns the derived condition label used by catalog filters.
func (p Product) Condition() string {
	if p.BrandNew {
		return "new"
	}
	return "used"
}
