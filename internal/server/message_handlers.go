package server

import (
	"skillcircle/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetDirectThread handles GET /api/messages/direct/:userId
func (s *Server) GetDirectThread(c *fiber.Ctx) error {
	peerID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	messages, err := s.messageService.GetDirectThread(c.UserContext(), currentUserID(c), peerID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(messages)
}

// GetGroupThread handles GET /api/messages/group/:circleId
func (s *Server) GetGroupThread(c *fiber.Ctx) error {
	circleID, err := s.parseID(c, "circleId")
	if err != nil {
		return nil
	}

	messages, err := s.messageService.GetGroupThread(c.UserContext(), currentUserID(c), circleID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(messages)
}

// SendDirectMessage handles POST /api/messages/direct
func (s *Server) SendDirectMessage(c *fiber.Ctx) error {
	var req struct {
		ReceiverID uint   `json:"receiver_id"`
		Content    string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ReceiverID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Receiver is required"))
	}

	message, err := s.messageService.SendDirectMessage(c.UserContext(), currentUserID(c), req.ReceiverID, req.Content)
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}

// SendGroupMessage handles POST /api/messages/group
func (s *Server) SendGroupMessage(c *fiber.Ctx) error {
	var req struct {
		CircleID uint   `json:"circle_id"`
		Content  string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.CircleID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Circle is required"))
	}

	message, err := s.messageService.SendGroupMessage(c.UserContext(), currentUserID(c), req.CircleID, req.Content)
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}

// GetConversations handles GET /api/messages/conversations
func (s *Server) GetConversations(c *fiber.Ctx) error {
	conversations, err := s.messageService.GetConversations(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(conversations)
}

// MarkConversationRead handles PUT /api/messages/read/:peerId
func (s *Server) MarkConversationRead(c *fiber.Ctx) error {
	peerID, err := s.parseID(c, "peerId")
	if err != nil {
		return nil
	}

	if err := s.messageService.MarkConversationRead(c.UserContext(), currentUserID(c), peerID); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Messages marked as read"})
}
