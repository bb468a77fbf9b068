package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SavedPost represents a bookmarked/saved post by a user, stored in MongoDB
// as a join document independent of the post lifecycle.
type SavedPost struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    string             `json:"user_id" bson:"user_id"` // Profile ID of the user who saved the post
	PostID    string             `json:"post_id" bson:"post_id"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// SavePostRequest defines the request body for bookmarking a post
type SavePostRequest struct {
	PostID string `json:"post_id" validate:"required"`
	UserID string `json:"user_id" validate:"required"`
}
