package repository

import (
	"context"
	"errors"

	"skillcircle/internal/models"

	"gorm.io/gorm"
)

// ChatbotRepository defines persistence operations for assistant history.
type ChatbotRepository interface {
	Create(ctx context.Context, entry *models.ChatbotHistory) error
	GetByID(ctx context.Context, id uint) (*models.ChatbotHistory, error)
	ListByUser(ctx context.Context, userID uint, topic string, limit, offset int) ([]models.ChatbotHistory, int64, error)
	Delete(ctx context.Context, id uint) error
	DistinctTopics(ctx context.Context, userID uint) ([]string, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
}

type chatbotRepository struct {
	db *gorm.DB
}

// NewChatbotRepository creates a new chatbot history repository
func NewChatbotRepository(db *gorm.DB) ChatbotRepository {
	return &chatbotRepository{db: db}
}

func (r *chatbotRepository) Create(ctx context.Context, entry *models.ChatbotHistory) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *chatbotRepository) GetByID(ctx context.Context, id uint) (*models.ChatbotHistory, error) {
	var entry models.ChatbotHistory
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Chat history", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &entry, nil
}

// ListByUser returns a page of the user's history, newest first, optionally
// filtered by topic, along with the total matching count.
func (r *chatbotRepository) ListByUser(ctx context.Context, userID uint, topic string, limit, offset int) ([]models.ChatbotHistory, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.ChatbotHistory{}).
		Where("user_id = ?", userID)
	if topic != "" {
		query = query.Where("topic = ?", topic)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var entries []models.ChatbotHistory
	if err := query.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return entries, total, nil
}

func (r *chatbotRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.ChatbotHistory{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *chatbotRepository) DistinctTopics(ctx context.Context, userID uint) ([]string, error) {
	var topics []string
	if err := r.db.WithContext(ctx).
		Model(&models.ChatbotHistory{}).
		Where("user_id = ?", userID).
		Distinct("topic").
		Order("topic").
		Pluck("topic", &topics).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return topics, nil
}

func (r *chatbotRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ChatbotHistory{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
