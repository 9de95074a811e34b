package cart

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"siopa/db"
	"siopa/models"
	"siopa/pricing"
	"siopa/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetOrCreate returns the user's cart, creating an empty one on first
// access. The upsert plus the unique userid index make concurrent first
// accesses converge on a single document.
func GetOrCreate(ctx context.Context, userID string) (models.Cart, error) {
	var c models.Cart
	err := db.CartCollection.FindOneAndUpdate(ctx,
		bson.M{"userid": userID},
		bson.M{"$setOnInsert": bson.M{
			"userid":    userID,
			"lines":     []models.CartLine{},
			"total":     0.0,
			"updatedat": time.Now(),
		}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&c)
	return c, err
}

func saveLines(ctx context.Context, userID string, lines []models.CartLine) (models.Cart, error) {
	c := models.Cart{
		UserID:    userID,
		Lines:     lines,
		Total:     pricing.CartTotal(lines),
		UpdatedAt: time.Now(),
	}
	_, err := db.CartCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"lines": c.Lines, "total": c.Total, "updatedat": c.UpdatedAt}},
	)
	return c, err
}

// GetCart returns the user's cart, lazily creating it.
func GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	c, err := GetOrCreate(ctx, userID)
	if err != nil {
		log.Println("GetCart upsert error:", err)
		http.Error(w, "Could not retrieve cart", http.StatusInternalServerError)
		return
	}

	// Stored total may be stale; the computed one is authoritative.
	c.Total = pricing.CartTotal(c.Lines)
	utils.RespondWithJSON(w, http.StatusOK, c)
}

// AddToCart puts a product line in the cart. Re-adding a product replaces
// its quantity with the supplied value.
func AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload struct {
		ProductID string `json:"productid"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("AddToCart decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if payload.ProductID == "" || payload.Quantity < 1 {
		http.Error(w, "Missing or invalid fields", http.StatusBadRequest)
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var product models.Product
	err := db.ProductCollection.FindOne(ctx, bson.M{"productid": payload.ProductID}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Println("AddToCart product lookup error:", err)
		http.Error(w, "Failed to add to cart", http.StatusInternalServerError)
		return
	}

	c, err := GetOrCreate(ctx, userID)
	if err != nil {
		log.Println("AddToCart upsert error:", err)
		http.Error(w, "Failed to add to cart", http.StatusInternalServerError)
		return
	}

	lines := UpsertLine(c.Lines, models.CartLine{
		ProductID: product.ProductID,
		Name:      product.Name,
		Price:     product.Price,
		Discount:  product.Discount,
		Quantity:  payload.Quantity,
		AddedAt:   time.Now(),
	})

	c, err = saveLines(ctx, userID, lines)
	if err != nil {
		log.Println("AddToCart save error:", err)
		http.Error(w, "Failed to add to cart", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, c)
}

// UpdateCart replaces the whole line list with the client's version.
// Last writer wins; there is no per-line merging.
func UpdateCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload struct {
		Lines []struct {
			ProductID string `json:"productid"`
			Quantity  int    `json:"quantity"`
		} `json:"lines"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("UpdateCart decode error:", err)
		http.Error(w, "Invalid JSON request", http.StatusBadRequest)
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if _, err := GetOrCreate(ctx, userID); err != nil {
		log.Println("UpdateCart upsert error:", err)
		http.Error(w, "Failed to update cart", http.StatusInternalServerError)
		return
	}

	// Prices come from the catalog, never from the client.
	now := time.Now()
	lines := make([]models.CartLine, 0, len(payload.Lines))
	for _, in := range payload.Lines {
		if in.ProductID == "" || in.Quantity < 1 {
			http.Error(w, "Missing or invalid fields", http.StatusBadRequest)
			return
		}
		var product models.Product
		err := db.ProductCollection.FindOne(ctx, bson.M{"productid": in.ProductID}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			http.Error(w, "Unknown product: "+in.ProductID, http.StatusBadRequest)
			return
		} else if err != nil {
			log.Println("UpdateCart product lookup error:", err)
			http.Error(w, "Failed to update cart", http.StatusInternalServerError)
			return
		}
		lines = append(lines, models.CartLine{
			ProductID: product.ProductID,
			Name:      product.Name,
			Price:     product.Price,
			Discount:  product.Discount,
			Quantity:  in.Quantity,
			AddedAt:   now,
		})
	}

	c, err := saveLines(ctx, userID, lines)
	if err != nil {
		log.Println("UpdateCart save error:", err)
		http.Error(w, "Failed to update cart", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, c)
}

// RemoveFromCart deletes one product line. Removing a line that is not in
// the cart succeeds quietly.
func RemoveFromCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("productid")

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	c, err := GetOrCreate(ctx, userID)
	if err != nil {
		log.Println("RemoveFromCart upsert error:", err)
		http.Error(w, "Could not retrieve cart", http.StatusInternalServerError)
		return
	}

	lines, _ := RemoveLine(c.Lines, productID)
	c, err = saveLines(ctx, userID, lines)
	if err != nil {
		log.Println("RemoveFromCart save error:", err)
		http.Error(w, "Failed to update cart", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, c)
}
