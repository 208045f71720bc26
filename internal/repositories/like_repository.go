package repositories

import (
	"errors"

	"github.com/boardhq/board/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	ToggleLike(postID string, userID uint) (liked bool, err error)
	GetLikesCount(postID string) (int64, error)
	HasUserLiked(postID string, userID uint) (bool, error)
	DeleteLikesByPostID(postID string) error
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// ToggleLike flips the like edge and reports the state it left behind.
// Same reconcile rule as follows: a duplicate-key insert lost a race with an
// identical toggle, so the edge exists and the result is "liked".
func (r *PostgresLikeRepository) ToggleLike(postID string, userID uint) (bool, error) {
	exists, err := r.HasUserLiked(postID, userID)
	if err != nil {
		return false, err
	}

	if exists {
		res := r.db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Like{})
		return false, res.Error
	}

	err = r.db.Create(&models.Like{PostID: postID, UserID: userID}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *PostgresLikeRepository) GetLikesCount(postID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// HasUserLiked reports whether userID liked the post. An anonymous viewer
// (ID 0) never has.
func (r *PostgresLikeRepository) HasUserLiked(postID string, userID uint) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	var count int64
	if err := r.db.Model(&models.Like{}).Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteLikesByPostID removes every like on a post, used when the post
// itself is deleted.
func (r *PostgresLikeRepository) DeleteLikesByPostID(postID string) error {
	return r.db.Where("post_id = ?", postID).Delete(&models.Like{}).Error
}
