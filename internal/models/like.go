package models

// Like marks a post as liked by a user. The composite unique index is the
// authoritative guard against duplicate edges under concurrent toggles.
type Like struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	PostID string `json:"post_id" gorm:"index;uniqueIndex:idx_post_user_like"`
	UserID uint   `json:"user_id" gorm:"index;uniqueIndex:idx_post_user_like"`
}
