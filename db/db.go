package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection       *mongo.Collection
	ProductCollection    *mongo.Collection
	CartCollection       *mongo.Collection
	FavouritesCollection *mongo.Collection
	PurchasesCollection  *mongo.Collection
	Client               *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("siopadb")
	UserCollection = database.Collection("users")
	ProductCollection = database.Collection("products")
	CartCollection = database.Collection("carts")
	FavouritesCollection = database.Collection("favourites")
	PurchasesCollection = database.Collection("purchases")

	EnsureIndexes(context.TODO())
}

// EnsureIndexes creates the unique indexes the storefront relies on:
// one account per email, and exactly one cart/favourites/purchase-history
// document per user so lazy get-or-create upserts cannot race into
// duplicates.
func EnsureIndexes(ctx context.Context) {
	unique := options.Index().SetUnique(true)

	_, err := UserCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	})
	if err != nil {
		log.Printf("users email index: %v", err)
	}

	for _, coll := range []*mongo.Collection{CartCollection, FavouritesCollection, PurchasesCollection} {
		_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "userid", Value: 1}},
			Options: unique,
		})
		if err != nil {
			log.Printf("%s userid index: %v", coll.Name(), err)
		}
	}

	_, err = ProductCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "productid", Value: 1}},
		Options: unique,
	})
	if err != nil {
		log.Printf("products productid index: %v", err)
	}
}
