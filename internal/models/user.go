package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserProfile represents a user document stored in MongoDB. It is created
// right after the account and never deleted by this layer.
type UserProfile struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AccountID string             `json:"account_id" bson:"account_id"` // Account service ID of the owner
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Username  string             `json:"username,omitempty" bson:"username,omitempty"`
	ImageURL  string             `json:"image_url" bson:"image_url"`
	ImageID   string             `json:"image_id,omitempty" bson:"image_id,omitempty"`
	Bio       string             `json:"bio,omitempty" bson:"bio,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// UpdateUserRequest defines the request body for updating a profile. The new
// avatar image, if any, arrives as a multipart file alongside these fields.
type UpdateUserRequest struct {
	Name     string `json:"name" form:"name" validate:"omitempty,min=2,max=50"`
	Username string `json:"username" form:"username" validate:"omitempty,min=2,max=30"`
	Bio      string `json:"bio" form:"bio" validate:"omitempty,max=2200"`
	ImageURL string `json:"image_url" form:"image_url"`
	ImageID  string `json:"image_id" form:"image_id"`
}
