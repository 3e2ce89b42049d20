package server

import (
	"skillcircle/internal/models"
	"skillcircle/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UpdateProfile handles PUT /api/users/profile
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	var req struct {
		Name      string   `json:"name"`
		Bio       string   `json:"bio"`
		Skills    []string `json:"skills"`
		Interests []string `json:"interests"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:    currentUserID(c),
		Name:      req.Name,
		Bio:       req.Bio,
		Skills:    req.Skills,
		Interests: req.Interests,
	})
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(user)
}

// GetDashboard handles GET /api/users/dashboard
func (s *Server) GetDashboard(c *fiber.Ctx) error {
	dashboard, err := s.userService.GetDashboard(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(dashboard)
}

// GetUsers handles GET /api/users
func (s *Server) GetUsers(c *fiber.Ctx) error {
	users, err := s.userService.ListUsers(c.UserContext(), currentUserID(c),
		c.Query("search"), models.UserRole(c.Query("role")))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(users)
}

// GetPublicProfile handles GET /api/users/:id (no auth)
func (s *Server) GetPublicProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetPublicProfile(c.UserContext(), id)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(user)
}
