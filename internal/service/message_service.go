package service

import (
	"context"

	"skillcircle/internal/models"
	"skillcircle/internal/repository"
)

// MessageService provides direct and circle messaging business logic.
type MessageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	circleRepo  repository.CircleRepository
}

// NewMessageService returns a new MessageService.
func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository, circleRepo repository.CircleRepository) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		circleRepo:  circleRepo,
	}
}

// GetDirectThread returns both directions of a one-to-one thread, ascending.
func (s *MessageService) GetDirectThread(ctx context.Context, userID, peerID uint) ([]models.Message, error) {
	return s.messageRepo.GetDirectThread(ctx, userID, peerID)
}

// GetGroupThread returns a circle's messages, ascending. The caller must be
// a member of the circle.
func (s *MessageService) GetGroupThread(ctx context.Context, userID, circleID uint) ([]models.Message, error) {
	member, err := s.circleRepo.IsMember(ctx, circleID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, models.NewForbiddenError("You must be a member of this circle to view its messages")
	}
	return s.messageRepo.GetGroupThread(ctx, circleID)
}

// SendDirectMessage sends a one-to-one message to the receiver. Sending to
// yourself is allowed; it behaves as a note-to-self thread.
func (s *MessageService) SendDirectMessage(ctx context.Context, senderID, receiverID uint, content string) (*models.Message, error) {
	if content == "" {
		return nil, models.NewValidationError("Message content is required")
	}
	if _, err := s.userRepo.GetByID(ctx, receiverID); err != nil {
		return nil, err
	}

	message := &models.Message{
		SenderID:    senderID,
		ReceiverID:  &receiverID,
		Content:     content,
		MessageType: models.MessageTypeDirect,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	return s.messageRepo.GetByID(ctx, message.ID)
}

// SendGroupMessage sends a message to a circle. The sender must be a member.
func (s *MessageService) SendGroupMessage(ctx context.Context, senderID, circleID uint, content string) (*models.Message, error) {
	if content == "" {
		return nil, models.NewValidationError("Message content is required")
	}
	if _, err := s.circleRepo.GetByID(ctx, circleID); err != nil {
		return nil, err
	}

	member, err := s.circleRepo.IsMember(ctx, circleID, senderID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, models.NewForbiddenError("You must be a member of this circle to send messages")
	}

	message := &models.Message{
		SenderID:    senderID,
		CircleID:    &circleID,
		Content:     content,
		MessageType: models.MessageTypeGroup,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	return s.messageRepo.GetByID(ctx, message.ID)
}

// GetConversations returns one entry per distinct direct-message peer with
// the latest message exchanged.
func (s *MessageService) GetConversations(ctx context.Context, userID uint) ([]models.Conversation, error) {
	return s.messageRepo.ListConversations(ctx, userID)
}

// MarkConversationRead marks all unread messages from the peer as read.
func (s *MessageService) MarkConversationRead(ctx context.Context, userID, peerID uint) error {
	return s.messageRepo.MarkRead(ctx, userID, peerID)
}
