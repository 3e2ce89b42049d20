package server

import (
	"skillcircle/internal/models"
	"skillcircle/internal/repository"
	"skillcircle/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetCourses handles GET /api/courses
func (s *Server) GetCourses(c *fiber.Ctx) error {
	courses, err := s.courseService.ListCourses(c.UserContext(), repository.CourseFilter{
		Category:   c.Query("category"),
		Type:       models.CourseType(c.Query("type")),
		Difficulty: models.CourseDifficulty(c.Query("difficulty")),
		Search:     c.Query("search"),
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(courses)
}

// GetCourse handles GET /api/courses/:id
func (s *Server) GetCourse(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	course, err := s.courseService.GetCourseByID(c.UserContext(), id)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(course)
}

// CreateCourse handles POST /api/courses
func (s *Server) CreateCourse(c *fiber.Ctx) error {
	var req struct {
		Title       string                  `json:"title"`
		Description string                  `json:"description"`
		Platform    string                  `json:"platform"`
		ImageURL    string                  `json:"image_url"`
		Type        models.CourseType       `json:"type"`
		Category    string                  `json:"category"`
		Duration    string                  `json:"duration"`
		Difficulty  models.CourseDifficulty `json:"difficulty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	course, err := s.courseService.CreateCourse(c.UserContext(), service.CreateCourseInput{
		OwnerID:     currentUserID(c),
		Title:       req.Title,
		Description: req.Description,
		Platform:    req.Platform,
		ImageURL:    req.ImageURL,
		Type:        req.Type,
		Category:    req.Category,
		Duration:    req.Duration,
		Difficulty:  req.Difficulty,
	})
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(course)
}

// UpdateCourse handles PUT /api/courses/:id
func (s *Server) UpdateCourse(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title        *string                    `json:"title"`
		Description  *string                    `json:"description"`
		Platform     *string                    `json:"platform"`
		ImageURL     *string                    `json:"image_url"`
		Availability *models.CourseAvailability `json:"availability"`
		Type         *models.CourseType         `json:"type"`
		Category     *string                    `json:"category"`
		Duration     *string                    `json:"duration"`
		Difficulty   *models.CourseDifficulty   `json:"difficulty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	course, err := s.courseService.UpdateCourse(c.UserContext(), currentUserID(c), id, service.UpdateCourseInput{
		Title:        req.Title,
		Description:  req.Description,
		Platform:     req.Platform,
		ImageURL:     req.ImageURL,
		Availability: req.Availability,
		Type:         req.Type,
		Category:     req.Category,
		Duration:     req.Duration,
		Difficulty:   req.Difficulty,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(course)
}

// DeleteCourse handles DELETE /api/courses/:id
func (s *Server) DeleteCourse(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.courseService.DeleteCourse(c.UserContext(), currentUserID(c), id); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Course deleted"})
}

// RequestCourseAccess handles POST /api/courses/:id/request
func (s *Server) RequestCourseAccess(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Reason     string `json:"reason"`
		TimeWindow string `json:"time_window"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	request, err := s.courseService.RequestAccess(c.UserContext(), service.RequestAccessInput{
		CourseID:    id,
		RequesterID: currentUserID(c),
		Reason:      req.Reason,
		TimeWindow:  req.TimeWindow,
	})
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(request)
}

// GetSentRequests handles GET /api/courses/requests/sent
func (s *Server) GetSentRequests(c *fiber.Ctx) error {
	requests, err := s.courseService.GetSentRequests(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(requests)
}

// GetReceivedRequests handles GET /api/courses/requests/received
func (s *Server) GetReceivedRequests(c *fiber.Ctx) error {
	requests, err := s.courseService.GetReceivedRequests(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(requests)
}

// UpdateRequestStatus handles PUT /api/courses/requests/:id
func (s *Server) UpdateRequestStatus(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status  models.RequestStatus `json:"status"`
		Message string               `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	request, err := s.courseService.UpdateRequestStatus(c.UserContext(), currentUserID(c), id, req.Status, req.Message)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(request)
}
