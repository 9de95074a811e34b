// Package users serves user listing and profile management.
package users

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"siopa/db"
	"siopa/models"
	"siopa/utils"
	"siopa/validators"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListUsers returns every account. Admin only; the password hash never
// leaves the projection.
func ListUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().
		SetProjection(bson.M{"password": 0, "refresh_token": 0, "refresh_expiry": 0}).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := db.UserCollection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		log.Println("ListUsers Find error:", err)
		http.Error(w, "Failed to fetch users", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var users []models.UserProfileResponse
	if err := cursor.All(ctx, &users); err != nil {
		http.Error(w, "Failed to decode users", http.StatusInternalServerError)
		return
	}
	if len(users) == 0 {
		users = []models.UserProfileResponse{}
	}

	utils.RespondWithJSON(w, http.StatusOK, users)
}

// GetProfile returns one user's public profile.
func GetProfile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := ps.ByName("userid")

	var profile models.UserProfileResponse
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID},
		options.FindOne().SetProjection(bson.M{"password": 0, "refresh_token": 0, "refresh_expiry": 0}),
	).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Println("GetProfile FindOne error:", err)
		http.Error(w, "Failed to fetch user", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, profile)
}

// EditProfile updates the caller's own profile fields.
func EditProfile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := ps.ByName("userid")
	requester := utils.GetUserIDFromRequest(r)
	if requester == "" || requester != userID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var input struct {
		FirstName   string `json:"first_name"`
		LastName    string `json:"last_name"`
		PhoneNumber string `json:"phone_number"`
		Eircode     string `json:"eircode"`
		Address     string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if input.FirstName != "" {
		if !validators.FirstName(input.FirstName) {
			http.Error(w, "Invalid first name", http.StatusBadRequest)
			return
		}
		set["first_name"] = input.FirstName
	}
	if input.LastName != "" {
		if !validators.LastName(input.LastName) {
			http.Error(w, "Invalid last name", http.StatusBadRequest)
			return
		}
		set["last_name"] = input.LastName
	}
	if input.PhoneNumber != "" {
		if !validators.Phone(input.PhoneNumber) {
			http.Error(w, "Invalid Irish mobile number", http.StatusBadRequest)
			return
		}
		set["phone_number"] = input.PhoneNumber
	}
	if input.Eircode != "" {
		if !validators.Eircode(input.Eircode) {
			http.Error(w, "Invalid Eircode", http.StatusBadRequest)
			return
		}
		set["eircode"] = input.Eircode
	}
	if input.Address != "" {
		set["address"] = input.Address
	}

	res, err := db.UserCollection.UpdateOne(ctx, bson.M{"userid": userID}, bson.M{"$set": set})
	if err != nil {
		log.Println("EditProfile UpdateOne error:", err)
		http.Error(w, "Failed to update profile", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Profile updated", nil)
}
