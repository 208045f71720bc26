package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a social feed post stored in MongoDB
type Post struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID  uint               `json:"author_id" bson:"author_id"`
	Content   string             `json:"content" bson:"content"`
	ImageURLs []string           `json:"image_urls,omitempty" bson:"image_urls,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content   string   `json:"content" validate:"required,min=1,max=2000"`
	ImageURLs []string `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
}
