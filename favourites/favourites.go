// Package favourites keeps the per-user set of favourited products.
package favourites

import (
	"context"
	"log"
	"net/http"
	"time"

	"siopa/db"
	"siopa/models"
	"siopa/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetOrCreate returns the user's favourites document, creating an empty one
// on first access.
func GetOrCreate(ctx context.Context, userID string) (models.Favourites, error) {
	var f models.Favourites
	err := db.FavouritesCollection.FindOneAndUpdate(ctx,
		bson.M{"userid": userID},
		bson.M{"$setOnInsert": bson.M{
			"userid":   userID,
			"products": []string{},
		}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&f)
	return f, err
}

func GetFavourites(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	f, err := GetOrCreate(ctx, userID)
	if err != nil {
		log.Println("GetFavourites upsert error:", err)
		http.Error(w, "Could not retrieve favourites", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, f)
}

// AddFavourite inserts a product into the set. $addToSet keeps repeat adds
// from accumulating duplicates.
func AddFavourite(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("productid")

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	err := db.ProductCollection.FindOne(ctx, bson.M{"productid": productID}).Err()
	if err == mongo.ErrNoDocuments {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Println("AddFavourite product lookup error:", err)
		http.Error(w, "Failed to add favourite", http.StatusInternalServerError)
		return
	}

	_, err = db.FavouritesCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$addToSet": bson.M{"products": productID}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		log.Println("AddFavourite UpdateOne error:", err)
		http.Error(w, "Failed to add favourite", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]string{"status": "added"})
}

// RemoveFavourite pulls a product from the set. Unlike cart removal this
// reports a miss: removing something that was never favourited is a 404.
func RemoveFavourite(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("productid")

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	res, err := db.FavouritesCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$pull": bson.M{"products": productID}},
	)
	if err != nil {
		log.Println("RemoveFavourite UpdateOne error:", err)
		http.Error(w, "Failed to remove favourite", http.StatusInternalServerError)
		return
	}
	if res.ModifiedCount == 0 {
		http.Error(w, "Not in favourites", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
