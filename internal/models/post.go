package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a social media post stored in MongoDB
type Post struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	CreatorID string             `json:"creator_id" bson:"creator_id"` // Profile ID of the user who created the post
	Caption   string             `json:"caption" bson:"caption"`
	ImageURL  string             `json:"image_url" bson:"image_url"`
	ImageID   string             `json:"image_id" bson:"image_id"`
	Location  string             `json:"location,omitempty" bson:"location,omitempty"`
	Tags      []string           `json:"tags" bson:"tags"`
	Likes     []string           `json:"likes" bson:"likes"` // Profile IDs of users who liked the post
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post. The
// image arrives as a multipart file; tags are a free-text comma list.
type CreatePostRequest struct {
	Caption  string `json:"caption" form:"caption" validate:"required,min=1,max=2200"`
	Location string `json:"location" form:"location" validate:"omitempty,max=100"`
	Tags     string `json:"tags" form:"tags" validate:"omitempty,max=500"`
}

// UpdatePostRequest defines the request body for updating an existing post.
// ImageURL/ImageID carry the current image reference; a multipart file, if
// present, replaces it.
type UpdatePostRequest struct {
	Caption  string `json:"caption" form:"caption" validate:"required,min=1,max=2200"`
	Location string `json:"location" form:"location" validate:"omitempty,max=100"`
	Tags     string `json:"tags" form:"tags" validate:"omitempty,max=500"`
	ImageURL string `json:"image_url" form:"image_url"`
	ImageID  string `json:"image_id" form:"image_id"`
}

// LikePostRequest defines the request body for replacing a post's likes set
type LikePostRequest struct {
	Likes []string `json:"likes" validate:"required"`
}
