package repositories

import (
	"github.com/boardhq/board/internal/models"
	"gorm.io/gorm"
)

// ReplyRepository defines the interface for forum reply data operations
type ReplyRepository interface {
	CreateReply(reply *models.Reply) error
	GetRepliesByTopicID(topicID uint) ([]models.Reply, error)
	GetRepliesCount(topicID uint) (int64, error)
	GetRepliesCountByAuthorID(authorID uint) (int64, error)
}

// PostgresReplyRepository implements ReplyRepository for PostgreSQL
type PostgresReplyRepository struct {
	db *gorm.DB
}

// NewPostgresReplyRepository creates a new PostgresReplyRepository
func NewPostgresReplyRepository(db *gorm.DB) *PostgresReplyRepository {
	return &PostgresReplyRepository{db: db}
}

func (r *PostgresReplyRepository) CreateReply(reply *models.Reply) error {
	return r.db.Create(reply).Error
}

// GetRepliesByTopicID returns a topic's replies oldest first, the display
// order.
func (r *PostgresReplyRepository) GetRepliesByTopicID(topicID uint) ([]models.Reply, error) {
	var replies []models.Reply
	if err := r.db.Where("topic_id = ?", topicID).Order("created_at ASC, id ASC").Find(&replies).Error; err != nil {
		return nil, err
	}
	return replies, nil
}

func (r *PostgresReplyRepository) GetRepliesCount(topicID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Reply{}).Where("topic_id = ?", topicID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresReplyRepository) GetRepliesCountByAuthorID(authorID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Reply{}).Where("author_id = ?", authorID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
