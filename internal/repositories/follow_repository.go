package repositories

import (
	"errors"

	"github.com/boardhq/board/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	ToggleFollow(followerID, followingID uint) (followed bool, err error)
	IsFollowing(followerID, followingID uint) (bool, error)
	GetFollowers(userID uint) ([]models.User, error)
	GetFollowing(userID uint) ([]models.User, error)
	GetFollowersCount(userID uint) (int64, error)
	GetFollowingCount(userID uint) (int64, error)
	GetFollowingIDs(followerID uint) ([]uint, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// ToggleFollow flips the follow edge and reports the state it left behind.
// The check-then-act sequence is only the fast path: the composite unique
// index on (follower_id, following_id) is the authoritative guard, and a
// duplicate-key insert means another request created the edge first, so the
// toggle reconciles to "followed".
func (r *PostgresFollowRepository) ToggleFollow(followerID, followingID uint) (bool, error) {
	exists, err := r.IsFollowing(followerID, followingID)
	if err != nil {
		return false, err
	}

	if exists {
		res := r.db.
			Where("follower_id = ? AND following_id = ?", followerID, followingID).
			Delete(&models.Follow{})
		return false, res.Error
	}

	err = r.db.Create(&models.Follow{FollowerID: followerID, FollowingID: followingID}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *PostgresFollowRepository) IsFollowing(followerID, followingID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Follow{}).Where("follower_id = ? AND following_id = ?", followerID, followingID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresFollowRepository) GetFollowers(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Table("follows").Select("follower_id").Where("following_id = ?", userID),
	).Find(&users).Error
	return users, err
}

func (r *PostgresFollowRepository) GetFollowing(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Table("follows").Select("following_id").Where("follower_id = ?", userID),
	).Find(&users).Error
	return users, err
}

func (r *PostgresFollowRepository) GetFollowersCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("following_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *PostgresFollowRepository) GetFollowingCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *PostgresFollowRepository) GetFollowingIDs(followerID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", followerID).Pluck("following_id", &ids).Error
	return ids, err
}
