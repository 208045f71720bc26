package models

import "time"

// Comment represents a comment on a post
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"index"` // Mongo ObjectID hex of the parent post
	AuthorID  uint      `json:"author_id" gorm:"index"`
	Content   string    `json:"content" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
	Next    string `json:"next,omitempty"`
}
