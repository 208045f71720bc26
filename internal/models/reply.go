package models

import "time"

// Reply is an answer within a forum topic. Replies are removed with their
// topic via the FK constraint.
type Reply struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TopicID   uint      `json:"topic_id" gorm:"index;constraint:OnDelete:CASCADE"`
	Topic     *Topic    `json:"-" gorm:"foreignKey:TopicID;constraint:OnDelete:CASCADE"`
	AuthorID  uint      `json:"author_id" gorm:"index"`
	Content   string    `json:"content" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateReplyRequest defines the request body for replying to a topic
type CreateReplyRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}
