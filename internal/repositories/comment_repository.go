package repositories

import (
	"github.com/boardhq/board/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentsByPostID(postID string) ([]models.Comment, error)
	GetCommentsByAuthorID(authorID uint) ([]models.Comment, error)
	GetCommentsCount(postID string) (int64, error)
	DeleteCommentsByPostID(postID string) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetCommentsByPostID returns a post's comments oldest first, the display
// order.
func (r *PostgresCommentRepository) GetCommentsByPostID(postID string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Where("post_id = ?", postID).Order("created_at ASC, id ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *PostgresCommentRepository) GetCommentsByAuthorID(authorID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Where("author_id = ?", authorID).Order("created_at DESC, id DESC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *PostgresCommentRepository) GetCommentsCount(postID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteCommentsByPostID removes every comment on a post, used when the
// post itself is deleted.
func (r *PostgresCommentRepository) DeleteCommentsByPostID(postID string) error {
	return r.db.Where("post_id = ?", postID).Delete(&models.Comment{}).Error
}
