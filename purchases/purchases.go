// Package purchases records checkouts and serves purchase history.
package purchases

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"siopa/cart"
	"siopa/db"
	"siopa/models"
	"siopa/mq"
	"siopa/products"
	"siopa/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrInsufficientStock = errors.New("insufficient stock")

// GetOrCreate returns the user's purchase history, creating an empty one on
// first access.
func GetOrCreate(ctx context.Context, userID string) (models.PurchaseHistory, error) {
	var h models.PurchaseHistory
	err := db.PurchasesCollection.FindOneAndUpdate(ctx,
		bson.M{"userid": userID},
		bson.M{"$setOnInsert": bson.M{
			"userid": userID,
			"orders": []models.PurchaseRecord{},
		}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&h)
	return h, err
}

func GetPurchases(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	h, err := GetOrCreate(ctx, userID)
	if err != nil {
		log.Println("GetPurchases upsert error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve purchase history")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, h)
}

// Checkout turns the user's cart into a purchase record. Stock decrement,
// history append, and cart clear are one transaction: either the whole
// checkout lands or none of it does.
func Checkout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	c, err := cart.GetOrCreate(ctx, userID)
	if err != nil {
		log.Println("Checkout cart lookup error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}
	if len(c.Lines) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Cart is empty")
		return
	}

	record, err := runCheckout(ctx, userID, c.Lines)
	if errors.Is(err, ErrInsufficientStock) {
		utils.RespondWithError(w, http.StatusConflict, err.Error())
		return
	} else if err != nil {
		log.Println("Checkout transaction error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Checkout failed")
		return
	}

	// Post-commit: drop stale caches, then notify the catalog worker and
	// live stock subscribers.
	mq.Emit(ctx, "checkout-completed", models.Index{EntityType: "purchase", EntityId: record.OrderID})
	for _, line := range record.Lines {
		products.InvalidateCache(line.ProductID)
		var p models.Product
		if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": line.ProductID}).Decode(&p); err == nil {
			products.BroadcastStockUpdate(p.ProductID, p.Stock)
		}
	}

	utils.SendResponse(w, http.StatusCreated, record, "Checkout complete", nil)
}

func runCheckout(ctx context.Context, userID string, lines []models.CartLine) (models.PurchaseRecord, error) {
	record := buildRecord(lines)

	session, err := db.Client.StartSession()
	if err != nil {
		return record, err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for _, line := range lines {
			filter, update := stockDecrement(line)
			res, err := db.ProductCollection.UpdateOne(sc, filter, update)
			if err != nil {
				return nil, err
			}
			if res.MatchedCount == 0 {
				return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, line.Name)
			}
		}

		if _, err := db.PurchasesCollection.UpdateOne(sc,
			bson.M{"userid": userID},
			bson.M{
				"$setOnInsert": bson.M{"userid": userID},
				"$push":        bson.M{"orders": record},
			},
			options.Update().SetUpsert(true),
		); err != nil {
			return nil, err
		}

		if _, err := db.CartCollection.UpdateOne(sc,
			bson.M{"userid": userID},
			bson.M{"$set": bson.M{"lines": []models.CartLine{}, "total": 0.0, "updatedat": time.Now()}},
		); err != nil {
			return nil, err
		}

		return nil, nil
	})

	return record, err
}
