package server

import (
	"errors"

	"skillcircle/internal/models"
	"skillcircle/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AskChatbot handles POST /api/chatbot/ask
func (s *Server) AskChatbot(c *fiber.Ctx) error {
	var req struct {
		Question string `json:"question"`
		Topic    string `json:"topic"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	result, err := s.chatbotService.Ask(c.UserContext(), currentUserID(c), req.Question, req.Topic)
	if err != nil {
		if errors.Is(err, service.ErrAssistantUnavailable) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"message": err.Error(),
				"answer":  s.chatbotService.UnavailableAnswer(),
			})
		}
		return models.RespondError(c, err)
	}

	return c.JSON(result)
}

// GetChatbotHistory handles GET /api/chatbot/history
func (s *Server) GetChatbotHistory(c *fiber.Ctx) error {
	page, err := s.chatbotService.GetHistory(c.UserContext(), currentUserID(c),
		c.QueryInt("page", 1), c.QueryInt("limit", 20), c.Query("topic"))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(page)
}

// DeleteChatbotHistory handles DELETE /api/chatbot/history/:id
func (s *Server) DeleteChatbotHistory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.chatbotService.DeleteHistoryEntry(c.UserContext(), currentUserID(c), id); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Chat history deleted"})
}

// GetChatbotTopics handles GET /api/chatbot/topics
func (s *Server) GetChatbotTopics(c *fiber.Ctx) error {
	topics, err := s.chatbotService.GetTopics(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(topics)
}
