package service

import (
	"context"
	"fmt"
	"time"

	"skillcircle/internal/ai"
	"skillcircle/internal/middleware"
	"skillcircle/internal/models"
	"skillcircle/internal/repository"
)

// providerTimeout bounds the generation call so a slow provider cannot hold
// the request open.
const providerTimeout = 10 * time.Second

const assistantSystemPrompt = "You are an educational assistant for SkillCircle, a learning platform. " +
	"Provide helpful, clear, and educational answers that help a student learn."

// unavailableAnswer is returned when no provider is configured. It is not
// persisted to history.
const unavailableAnswer = "I apologize, but the AI service is currently unavailable. Please ensure the Gemini API key is properly configured."

// ChatbotService provides the study-assistant business logic: it proxies
// questions to a text-generation provider and keeps per-user history.
type ChatbotService struct {
	generator   ai.TextGenerator // nil when no provider is configured
	chatbotRepo repository.ChatbotRepository
}

// NewChatbotService returns a new ChatbotService. generator may be nil, in
// which case Ask reports the assistant as unavailable.
func NewChatbotService(generator ai.TextGenerator, chatbotRepo repository.ChatbotRepository) *ChatbotService {
	return &ChatbotService{
		generator:   generator,
		chatbotRepo: chatbotRepo,
	}
}

// ErrAssistantUnavailable signals that no provider is configured. Handlers
// map it to 503 with the static unavailable answer.
var ErrAssistantUnavailable = &models.AppError{
	Code:    models.CodeInternal,
	Message: "AI service not available. Please add GEMINI_API_KEY to environment variables.",
}

// AskResult is the response shape for an answered question.
type AskResult struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Topic     string    `json:"topic"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryPage is one page of assistant history with pagination metadata.
type HistoryPage struct {
	History    []models.ChatbotHistory `json:"history"`
	Pagination Pagination              `json:"pagination"`
}

// Pagination describes the page window of a list response.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// Ask sends the question to the provider and persists the exchange. A
// provider failure degrades to a canned study-advice answer, which is still
// persisted so the user's history reflects what they were shown.
func (s *ChatbotService) Ask(ctx context.Context, userID uint, question, topic string) (*AskResult, error) {
	if question == "" {
		return nil, models.NewValidationError("Question is required")
	}
	if topic == "" {
		topic = models.DefaultChatTopic
	}

	if s.generator == nil {
		return nil, ErrAssistantUnavailable
	}

	prompt := fmt.Sprintf(
		"Please provide a helpful, clear, and educational answer to the following question about %s:\n\nQuestion: %s\n\nPlease provide a comprehensive but concise answer that would help a student learn.",
		topic, question,
	)

	genCtx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()

	answer, err := s.generator.GenerateText(genCtx, assistantSystemPrompt, prompt)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "assistant provider call failed", "error", err)
		answer = fmt.Sprintf(
			"I'm having trouble processing your question right now. However, I'd suggest breaking down your question about %q into smaller parts and trying to research each component. You might also want to ask this question in one of the study circles on our platform where other learners can help!",
			question,
		)
	}

	entry := &models.ChatbotHistory{
		UserID:   userID,
		Question: question,
		Answer:   answer,
		Topic:    topic,
	}
	if err := s.chatbotRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	return &AskResult{
		Question:  question,
		Answer:    answer,
		Topic:     topic,
		Timestamp: entry.CreatedAt,
	}, nil
}

// UnavailableAnswer is the static answer shown when no provider is
// configured.
func (s *ChatbotService) UnavailableAnswer() string {
	return unavailableAnswer
}

// GetHistory returns a page of the caller's history, newest first. A topic
// of "all" or "" applies no topic filter.
func (s *ChatbotService) GetHistory(ctx context.Context, userID uint, page, limit int, topic string) (*HistoryPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if topic == "all" {
		topic = ""
	}

	entries, total, err := s.chatbotRepo.ListByUser(ctx, userID, topic, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return &HistoryPage{
		History: entries,
		Pagination: Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	}, nil
}

// DeleteHistoryEntry removes one of the caller's own history entries.
func (s *ChatbotService) DeleteHistoryEntry(ctx context.Context, userID, entryID uint) error {
	entry, err := s.chatbotRepo.GetByID(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.UserID != userID {
		return models.NewForbiddenError("Not authorized to delete this chat history")
	}
	return s.chatbotRepo.Delete(ctx, entryID)
}

// GetTopics returns the distinct topics in the caller's history.
func (s *ChatbotService) GetTopics(ctx context.Context, userID uint) ([]string, error) {
	return s.chatbotRepo.DistinctTopics(ctx, userID)
}
