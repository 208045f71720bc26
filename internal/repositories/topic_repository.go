package repositories

import (
	"github.com/boardhq/board/internal/models"
	"gorm.io/gorm"
)

// TopicRepository defines the interface for forum topic data operations
type TopicRepository interface {
	CreateTopic(topic *models.Topic) error
	GetTopicByID(id uint) (*models.Topic, error)
	GetTopics() ([]models.Topic, error)
	DeleteTopic(id uint) error
}

// PostgresTopicRepository implements TopicRepository for PostgreSQL
type PostgresTopicRepository struct {
	db *gorm.DB
}

// NewPostgresTopicRepository creates a new PostgresTopicRepository
func NewPostgresTopicRepository(db *gorm.DB) *PostgresTopicRepository {
	return &PostgresTopicRepository{db: db}
}

func (r *PostgresTopicRepository) CreateTopic(topic *models.Topic) error {
	return r.db.Create(topic).Error
}

func (r *PostgresTopicRepository) GetTopicByID(id uint) (*models.Topic, error) {
	var topic models.Topic
	if err := r.db.First(&topic, id).Error; err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *PostgresTopicRepository) GetTopics() ([]models.Topic, error) {
	var topics []models.Topic
	if err := r.db.Order("created_at DESC, id DESC").Find(&topics).Error; err != nil {
		return nil, err
	}
	return topics, nil
}

// DeleteTopic removes a topic and, in the same transaction, its replies.
func (r *PostgresTopicRepository) DeleteTopic(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("topic_id = ?", id).Delete(&models.Reply{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Topic{}, id).Error
	})
}
