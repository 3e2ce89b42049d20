package repository

import (
	"context"
	"errors"

	"skillcircle/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines persistence operations for direct and group messages.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id uint) (*models.Message, error)
	GetDirectThread(ctx context.Context, userID, peerID uint) ([]models.Message, error)
	GetGroupThread(ctx context.Context, circleID uint) ([]models.Message, error)
	ListConversations(ctx context.Context, userID uint) ([]models.Conversation, error)
	MarkRead(ctx context.Context, userID, peerID uint) error
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *messageRepository) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	var message models.Message
	if err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		Preload("Circle", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "topic")
		}).
		First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Message", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &message, nil
}

// GetDirectThread returns all direct messages between two users, oldest first.
func (r *messageRepository) GetDirectThread(ctx context.Context, userID, peerID uint) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Where("message_type = ?", models.MessageTypeDirect).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, peerID, peerID, userID).
		Preload("Sender").
		Preload("Receiver").
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

// GetGroupThread returns all group messages for a circle, oldest first.
func (r *messageRepository) GetGroupThread(ctx context.Context, circleID uint) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Where("message_type = ? AND circle_id = ?", models.MessageTypeGroup, circleID).
		Preload("Sender").
		Preload("Circle", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "topic")
		}).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

// ListConversations returns, for each distinct peer the user has exchanged
// direct messages with, the single most-recent message plus the peer's public
// identity. Ranking is done in SQL with a window function (Postgres and
// SQLite both support ROW_NUMBER), newest conversation first.
func (r *messageRepository) ListConversations(ctx context.Context, userID uint) ([]models.Conversation, error) {
	var lastMessages []models.Message
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, sender_id, receiver_id, circle_id, content, message_type, is_read, created_at, updated_at
		FROM (
			SELECT m.*, ROW_NUMBER() OVER (
				PARTITION BY CASE WHEN m.sender_id = ? THEN m.receiver_id ELSE m.sender_id END
				ORDER BY m.created_at DESC, m.id DESC
			) AS rn
			FROM messages m
			WHERE m.message_type = 'direct' AND (m.sender_id = ? OR m.receiver_id = ?)
		) ranked
		WHERE rn = 1
		ORDER BY created_at DESC`,
		userID, userID, userID,
	).Scan(&lastMessages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	if len(lastMessages) == 0 {
		return []models.Conversation{}, nil
	}

	// Resolve every involved user in one query.
	idSet := map[uint]struct{}{userID: {}}
	for _, m := range lastMessages {
		idSet[m.SenderID] = struct{}{}
		if m.ReceiverID != nil {
			idSet[*m.ReceiverID] = struct{}{}
		}
	}
	ids := make([]uint, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	var users []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	byID := make(map[uint]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	conversations := make([]models.Conversation, 0, len(lastMessages))
	for _, m := range lastMessages {
		peerID := m.SenderID
		if m.SenderID == userID && m.ReceiverID != nil {
			peerID = *m.ReceiverID
		}
		peer, ok := byID[peerID]
		if !ok {
			continue
		}
		if sender, ok := byID[m.SenderID]; ok {
			m.Sender = &sender
		}
		if m.ReceiverID != nil {
			if receiver, ok := byID[*m.ReceiverID]; ok {
				m.Receiver = &receiver
			}
		}
		conversations = append(conversations, models.Conversation{
			Peer:        peer,
			LastMessage: m,
		})
	}
	return conversations, nil
}

// MarkRead flags every unread direct message from peer to user as read.
func (r *messageRepository) MarkRead(ctx context.Context, userID, peerID uint) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("message_type = ? AND sender_id = ? AND receiver_id = ? AND is_read = ?",
			models.MessageTypeDirect, peerID, userID, false).
		Update("is_read", true).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
