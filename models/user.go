package models

import "time"

type User struct {
	UserID        string    `json:"userid" bson:"userid"`
	FirstName     string    `json:"first_name" bson:"first_name"`
	LastName      string    `json:"last_name" bson:"last_name"`
	Email         string    `json:"email" bson:"email"`
	Password      string    `json:"-" bson:"password"`
	Role          []string  `json:"role" bson:"role"`
	Avatar        string    `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Address       string    `json:"address,omitempty" bson:"address,omitempty"`
	Eircode       string    `json:"eircode,omitempty" bson:"eircode,omitempty"`
	PhoneNumber   string    `json:"phone_number,omitempty" bson:"phone_number,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
	LastLogin     time.Time `json:"last_login" bson:"last_login"`
	RefreshToken  string    `json:"-" bson:"refresh_token,omitempty"`
	RefreshExpiry time.Time `json:"-" bson:"refresh_expiry,omitempty"`
}

// FullName is the "first last" form prefix search matches against.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UserProfileResponse is the public shape of a user document.
type UserProfileResponse struct {
	UserID      string    `json:"userid" bson:"userid"`
	FirstName   string    `json:"first_name" bson:"first_name"`
	LastName    string    `json:"last_name" bson:"last_name"`
	Email       string    `json:"email" bson:"email"`
	Role        []string  `json:"role" bson:"role"`
	Avatar      string    `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Address     string    `json:"address,omitempty" bson:"address,omitempty"`
	Eircode     string    `json:"eircode,omitempty" bson:"eircode,omitempty"`
	PhoneNumber string    `json:"phone_number,omitempty" bson:"phone_number,omitempty"`
	LastLogin   time.Time `json:"last_login" bson:"last_login"`
}
