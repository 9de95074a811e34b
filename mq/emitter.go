package mq

import (
	"context"
	"encoding/json"
	"log"

	"siopa/catalog"
	"siopa/db"
	"siopa/models"
	"siopa/rdx"

	"go.mongodb.org/mongo-driver/bson"
)

const eventsChannel = "catalog-events"

// FacetsCacheKey holds the JSON-encoded category/condition counts for the
// filter UI. Rewritten by the worker whenever the catalog changes.
const FacetsCacheKey = "catalog:facets"

// Emit publishes a catalog event to Redis. Fire and forget; a lost event
// only delays a cache refresh.
func Emit(ctx context.Context, eventName string, content models.Index) {
	content.Method = eventName
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event content: %v", err)
		return
	}
	if err := rdx.Conn.Publish(ctx, eventsChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish event to Redis: %v", err)
	}
}

// StartCatalogWorker subscribes to catalog events and refreshes the cached
// facet counts on every product create/update/delete and every checkout.
func StartCatalogWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, eventsChannel)
	ch := sub.Channel()

	log.Println("Catalog worker listening on", eventsChannel)

	for msg := range ch {
		var evt models.Index
		if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
			log.Printf("Catalog worker: bad payload: %v", err)
			continue
		}
		if err := RefreshFacets(ctx); err != nil {
			log.Printf("Catalog worker: facet refresh failed: %v", err)
		}
	}
}

// RefreshFacets recounts category and condition buckets over the whole
// catalog and stores the result in Redis.
func RefreshFacets(ctx context.Context) error {
	cursor, err := db.ProductCollection.Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return err
	}

	counts := catalog.CountCategoriesAndConditions(products)
	data, err := json.Marshal(counts)
	if err != nil {
		return err
	}
	return rdx.RdxSet(FacetsCacheKey, string(data))
}
