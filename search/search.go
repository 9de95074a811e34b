// Package search exposes the catalog filter, prefix search, and facet
// counts over HTTP. Filtering runs in memory over the fetched collection;
// the catalog is small enough that the predicate logic stays in one place
// instead of being split across Mongo query fragments.
package search

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"siopa/catalog"
	"siopa/db"
	"siopa/models"
	"siopa/mq"
	"siopa/rdx"
	"siopa/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func loadProducts(ctx context.Context) ([]models.Product, error) {
	cursor, err := db.ProductCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FilterProducts applies a catalog.Filter posted by the client.
func FilterProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var filter catalog.Filter
	if err := json.NewDecoder(r.Body).Decode(&filter); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	products, err := loadProducts(ctx)
	if err != nil {
		log.Println("FilterProducts load error:", err)
		http.Error(w, "Failed to fetch products", http.StatusInternalServerError)
		return
	}

	matched := catalog.MatchingProducts(products, filter)
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"items": matched,
		"total": len(matched),
	})
}

// SearchProducts is prefix search over product names: ?prefix=bar
func SearchProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	prefix := r.URL.Query().Get("prefix")

	products, err := loadProducts(ctx)
	if err != nil {
		log.Println("SearchProducts load error:", err)
		http.Error(w, "Failed to fetch products", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, catalog.ProductsWithPrefix(prefix, products))
}

// SearchUsers is prefix search over "first last" names. Admin only.
func SearchUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	prefix := r.URL.Query().Get("prefix")

	cursor, err := db.UserCollection.Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"password": 0, "refresh_token": 0, "refresh_expiry": 0}))
	if err != nil {
		log.Println("SearchUsers Find error:", err)
		http.Error(w, "Failed to fetch users", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		http.Error(w, "Failed to decode users", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, catalog.UsersWithPrefix(prefix, users))
}

// GetFacets returns category/condition counts for the filter checkboxes,
// from the Redis cache where possible.
func GetFacets(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if cached, err := rdx.RdxGet(mq.FacetsCacheKey); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	// Cache miss: recount now and leave the cache warm.
	if err := mq.RefreshFacets(ctx); err != nil {
		log.Println("GetFacets refresh error:", err)
		http.Error(w, "Failed to count facets", http.StatusInternalServerError)
		return
	}

	cached, err := rdx.RdxGet(mq.FacetsCacheKey)
	if err != nil {
		http.Error(w, "Failed to count facets", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(cached))
}

// Suggest returns up to n prefix matches for the storefront search box.
func Suggest(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	prefix := r.URL.Query().Get("prefix")
	n := 5
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		n = v
	}

	products, err := loadProducts(ctx)
	if err != nil {
		http.Error(w, "Failed to fetch products", http.StatusInternalServerError)
		return
	}

	matched := catalog.ProductsWithPrefix(prefix, products)
	if len(matched) > n {
		matched = matched[:n]
	}

	names := make([]string, 0, len(matched))
	for _, p := range matched {
		names = append(names, p.Name)
	}
	utils.RespondWithJSON(w, http.StatusOK, names)
}
