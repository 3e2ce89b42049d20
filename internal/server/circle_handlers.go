package server

import (
	"skillcircle/internal/models"
	"skillcircle/internal/repository"
	"skillcircle/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetCircles handles GET /api/circles
func (s *Server) GetCircles(c *fiber.Ctx) error {
	circles, err := s.circleService.ListCircles(c.UserContext(), repository.CircleFilter{
		Topic:      c.Query("topic"),
		SkillLevel: models.CourseDifficulty(c.Query("skillLevel")),
		Search:     c.Query("search"),
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(circles)
}

// GetCircle handles GET /api/circles/:id
func (s *Server) GetCircle(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	circle, err := s.circleService.GetCircleByID(c.UserContext(), id)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(circle)
}

// CreateCircle handles POST /api/circles
func (s *Server) CreateCircle(c *fiber.Ctx) error {
	var req struct {
		Name         string                  `json:"name"`
		Topic        string                  `json:"topic"`
		SkillLevel   models.CourseDifficulty `json:"skill_level"`
		Availability string                  `json:"availability"`
		Goals        string                  `json:"goals"`
		Resources    []string                `json:"resources"`
		MaxMembers   int                     `json:"max_members"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	circle, err := s.circleService.CreateCircle(c.UserContext(), service.CreateCircleInput{
		CreatorID:    currentUserID(c),
		Name:         req.Name,
		Topic:        req.Topic,
		SkillLevel:   req.SkillLevel,
		Availability: req.Availability,
		Goals:        req.Goals,
		Resources:    req.Resources,
		MaxMembers:   req.MaxMembers,
	})
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(circle)
}

// JoinCircle handles POST /api/circles/:id/join
func (s *Server) JoinCircle(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	circle, err := s.circleService.JoinCircle(c.UserContext(), currentUserID(c), id)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(circle)
}

// LeaveCircle handles POST /api/circles/:id/leave
func (s *Server) LeaveCircle(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	circle, err := s.circleService.LeaveCircle(c.UserContext(), currentUserID(c), id)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(circle)
}

// UpdateCircle handles PUT /api/circles/:id
func (s *Server) UpdateCircle(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name         *string                  `json:"name"`
		Topic        *string                  `json:"topic"`
		SkillLevel   *models.CourseDifficulty `json:"skill_level"`
		Availability *string                  `json:"availability"`
		Goals        *string                  `json:"goals"`
		Resources    []string                 `json:"resources"`
		IsActive     *bool                    `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	circle, err := s.circleService.UpdateCircle(c.UserContext(), currentUserID(c), id, service.UpdateCircleInput{
		Name:         req.Name,
		Topic:        req.Topic,
		SkillLevel:   req.SkillLevel,
		Availability: req.Availability,
		Goals:        req.Goals,
		Resources:    req.Resources,
		IsActive:     req.IsActive,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(circle)
}

// DeleteCircle handles DELETE /api/circles/:id
func (s *Server) DeleteCircle(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.circleService.DeleteCircle(c.UserContext(), currentUserID(c), id); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Study circle deleted"})
}
