// Package service contains the application's business logic, sitting between
// the HTTP handlers and the repositories.
package service

import (
	"context"

	"skillcircle/internal/models"
	"skillcircle/internal/repository"
)

const recentItemsLimit = 5

// UserService provides profile and dashboard business logic.
type UserService struct {
	userRepo    repository.UserRepository
	courseRepo  repository.CourseRepository
	circleRepo  repository.CircleRepository
	requestRepo repository.CourseRequestRepository
	chatbotRepo repository.ChatbotRepository
}

// NewUserService returns a new UserService.
func NewUserService(
	userRepo repository.UserRepository,
	courseRepo repository.CourseRepository,
	circleRepo repository.CircleRepository,
	requestRepo repository.CourseRequestRepository,
	chatbotRepo repository.ChatbotRepository,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		courseRepo:  courseRepo,
		circleRepo:  circleRepo,
		requestRepo: requestRepo,
		chatbotRepo: chatbotRepo,
	}
}

// UpdateProfileInput carries the replaceable profile fields. Skills and
// Interests replace the stored lists wholesale; an empty list clears them.
type UpdateProfileInput struct {
	UserID    uint
	Name      string
	Bio       string
	Skills    []string
	Interests []string
}

// DashboardStats aggregates per-user counters for the dashboard view.
type DashboardStats struct {
	TotalCourses     int64 `json:"totalCourses"`
	TotalCircles     int64 `json:"totalCircles"`
	TotalChats       int64 `json:"totalChats"`
	SentRequests     int64 `json:"sentRequests"`
	ReceivedRequests int64 `json:"receivedRequests"`
	PendingRequests  int64 `json:"pendingRequests"`
}

// Dashboard is the full dashboard payload: counters plus recent activity.
type Dashboard struct {
	Stats         DashboardStats          `json:"stats"`
	RecentCourses []models.Course         `json:"recentCourses"`
	RecentCircles []models.StudyCircle    `json:"recentCircles"`
	RecentChats   []models.ChatbotHistory `json:"recentChats"`
	User          *models.User            `json:"user"`
}

// GetUserByID returns the user with the given ID.
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetPublicProfile returns a user's public profile with joined-circle and
// shared-course summaries.
func (s *UserService) GetPublicProfile(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetPublicProfile(ctx, id)
}

// ListUsers returns users matching the filter, excluding the caller.
func (s *UserService) ListUsers(ctx context.Context, callerID uint, search string, role models.UserRole) ([]models.User, error) {
	const limit = 20
	return s.userRepo.List(ctx, repository.UserFilter{
		Search:    search,
		Role:      role,
		ExcludeID: callerID,
	}, limit)
}

// UpdateProfile replaces the caller's editable profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxNameLen = 100
	const maxBioLen = 500

	if in.Name != "" {
		if len(in.Name) > maxNameLen {
			return nil, models.NewValidationError("Name too long (max 100 characters)")
		}
		user.Name = in.Name
	}
	if len(in.Bio) > maxBioLen {
		return nil, models.NewValidationError("Bio too long (max 500 characters)")
	}
	user.Bio = in.Bio
	user.Skills = in.Skills
	user.Interests = in.Interests

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetDashboard assembles the caller's activity counters and recent items.
func (s *UserService) GetDashboard(ctx context.Context, userID uint) (*Dashboard, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	dash := &Dashboard{User: user}

	if dash.Stats.TotalCourses, err = s.courseRepo.CountByOwner(ctx, userID); err != nil {
		return nil, err
	}
	if dash.Stats.TotalCircles, err = s.circleRepo.CountByMember(ctx, userID); err != nil {
		return nil, err
	}
	if dash.Stats.TotalChats, err = s.chatbotRepo.CountByUser(ctx, userID); err != nil {
		return nil, err
	}
	if dash.Stats.SentRequests, err = s.requestRepo.CountByRequester(ctx, userID); err != nil {
		return nil, err
	}
	if dash.Stats.ReceivedRequests, err = s.requestRepo.CountByOwner(ctx, userID, false); err != nil {
		return nil, err
	}
	if dash.Stats.PendingRequests, err = s.requestRepo.CountByOwner(ctx, userID, true); err != nil {
		return nil, err
	}

	if dash.RecentCourses, err = s.courseRepo.ListByOwner(ctx, userID, recentItemsLimit); err != nil {
		return nil, err
	}
	if dash.RecentCircles, err = s.circleRepo.ListByMember(ctx, userID, recentItemsLimit); err != nil {
		return nil, err
	}
	recentChats, _, err := s.chatbotRepo.ListByUser(ctx, userID, "", recentItemsLimit, 0)
	if err != nil {
		return nil, err
	}
	dash.RecentChats = recentChats

	return dash, nil
}
