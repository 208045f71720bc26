package models

import "time"

// Topic is a forum discussion thread
type Topic struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:255"`
	Content   string    `json:"content" gorm:"type:text"`
	AuthorID  uint      `json:"author_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateTopicRequest defines the request body for creating a new topic
type CreateTopicRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=255"`
	Content string `json:"content" validate:"required,min=1"`
}
