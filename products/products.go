// Package products is the catalog store: admin CRUD plus public reads.
package products

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"siopa/db"
	"siopa/models"
	"siopa/mq"
	"siopa/rdx"
	"siopa/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const cachePrefix = "product:"

// GetProducts lists the catalog with optional search, category filter,
// sorting, and paging. Returns {items, total}.
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	search := r.URL.Query().Get("search")
	category := r.URL.Query().Get("category")
	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")
	sortParam := r.URL.Query().Get("sort") // e.g. price_asc, name_desc

	limit := int64(20)
	offset := int64(0)

	if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
		limit = int64(l)
	}
	if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
		offset = int64(o)
	}

	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	if search != "" {
		filter["name"] = bson.M{"$regex": primitive.Regex{Pattern: "^" + search, Options: "i"}}
	}

	sort := bson.D{{Key: "name", Value: 1}} // default
	switch sortParam {
	case "price_asc":
		sort = bson.D{{Key: "price", Value: 1}}
	case "price_desc":
		sort = bson.D{{Key: "price", Value: -1}}
	case "rating_desc":
		sort = bson.D{{Key: "rating", Value: -1}}
	case "sold_desc":
		sort = bson.D{{Key: "sold", Value: -1}}
	case "name_desc":
		sort = bson.D{{Key: "name", Value: -1}}
	}

	findOptions := options.Find().
		SetLimit(limit).
		SetSkip(offset).
		SetSort(sort)

	cursor, err := db.ProductCollection.Find(ctx, filter, findOptions)
	if err != nil {
		http.Error(w, "Failed to fetch products", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var items []models.Product
	if err := cursor.All(ctx, &items); err != nil {
		http.Error(w, "Failed to decode products", http.StatusInternalServerError)
		return
	}
	if len(items) == 0 {
		items = []models.Product{}
	}

	count, err := db.ProductCollection.CountDocuments(ctx, filter)
	if err != nil {
		http.Error(w, "Failed to count products", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
		"total": count,
	})
}

// GetProduct fetches one product, through the Redis cache when possible.
func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	productID := ps.ByName("productid")

	if cached, err := rdx.RdxGet(cachePrefix + productID); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	var product models.Product
	err := db.ProductCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Println("GetProduct FindOne error:", err)
		http.Error(w, "Failed to fetch product", http.StatusInternalServerError)
		return
	}

	if data, err := json.Marshal(product); err == nil {
		if err := rdx.SetWithExpiry(cachePrefix+productID, string(data), 5*time.Minute); err != nil {
			log.Printf("Failed to cache product %s: %v", productID, err)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, product)
}

// InvalidateCache drops a product's cached document so the next read hits
// Mongo. Callers that change stock or fields must invalidate, or reads can
// serve the old document until the TTL expires.
func InvalidateCache(productID string) {
	if _, err := rdx.RdxDel(cachePrefix + productID); err != nil {
		log.Printf("Cache deletion failed for product %s: %v", productID, err)
	}
}

func validateProductFields(p *models.Product) string {
	switch {
	case p.Name == "":
		return "Name is required"
	case p.Price < 0:
		return "Price must not be negative"
	case p.Discount < 0 || p.Discount > 99:
		return "Discount must be between 0 and 99"
	case p.Stock < 0:
		return "Stock must not be negative"
	case p.Rating < 0 || p.Rating > 5:
		return "Rating must be between 0 and 5"
	case len(p.Images) > maxProductImages:
		return "At most five images per product"
	}
	return ""
}

// CreateProduct inserts a catalog entry from a multipart form. Admin only.
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	product, err := parseProductForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	product.ProductID = "p" + utils.GenerateName(10)
	product.CreatedBy = userID
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt

	if msg := validateProductFields(&product); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	images, thumbs, err := saveProductImages(r, product.ProductID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	product.Images = images
	product.Thumbnails = thumbs

	if _, err := db.ProductCollection.InsertOne(ctx, product); err != nil {
		log.Println("CreateProduct InsertOne error:", err)
		http.Error(w, "Failed to create product", http.StatusInternalServerError)
		return
	}

	mq.Emit(ctx, "product-created", models.Index{EntityType: "product", EntityId: product.ProductID})

	utils.SendResponse(w, http.StatusCreated, product, "Product created", nil)
}

// UpdateProduct replaces the mutable fields of a product. Admin only.
func UpdateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("productid")

	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	if msg := validateProductFields(&product); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	update := bson.M{"$set": bson.M{
		"name":          product.Name,
		"description":   product.Description,
		"price":         product.Price,
		"discount":      product.Discount,
		"stock":         product.Stock,
		"brand_new":     product.BrandNew,
		"category":      product.Category,
		"rating":        product.Rating,
		"no_of_reviews": product.ReviewCount,
		"updated_at":    time.Now(),
	}}

	res, err := db.ProductCollection.UpdateOne(ctx, bson.M{"productid": productID}, update)
	if err != nil {
		log.Println("UpdateProduct UpdateOne error:", err)
		http.Error(w, "Failed to update product", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	InvalidateCache(productID)
	mq.Emit(ctx, "product-updated", models.Index{EntityType: "product", EntityId: productID})

	utils.SendResponse(w, http.StatusOK, nil, "Product updated", nil)
}

// DeleteProduct removes a product from the catalog. Admin only.
func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("productid")

	res, err := db.ProductCollection.DeleteOne(ctx, bson.M{"productid": productID})
	if err != nil {
		log.Println("DeleteProduct DeleteOne error:", err)
		http.Error(w, "Failed to delete product", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	InvalidateCache(productID)
	mq.Emit(ctx, "product-deleted", models.Index{EntityType: "product", EntityId: productID})

	utils.SendResponse(w, http.StatusOK, nil, "Product deleted", nil)
}
