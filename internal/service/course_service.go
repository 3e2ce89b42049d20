package service

import (
	"context"

	"skillcircle/internal/models"
	"skillcircle/internal/repository"
)

// CourseService provides course listing and access-request business logic.
type CourseService struct {
	courseRepo  repository.CourseRepository
	requestRepo repository.CourseRequestRepository
}

// NewCourseService returns a new CourseService.
func NewCourseService(courseRepo repository.CourseRepository, requestRepo repository.CourseRequestRepository) *CourseService {
	return &CourseService{
		courseRepo:  courseRepo,
		requestRepo: requestRepo,
	}
}

// CreateCourseInput carries the fields for a new course listing.
type CreateCourseInput struct {
	OwnerID     uint
	Title       string
	Description string
	Platform    string
	ImageURL    string
	Type        models.CourseType
	Category    string
	Duration    string
	Difficulty  models.CourseDifficulty
}

// UpdateCourseInput carries the replaceable fields of an existing listing.
// Nil pointers leave the stored value unchanged.
type UpdateCourseInput struct {
	Title        *string
	Description  *string
	Platform     *string
	ImageURL     *string
	Availability *models.CourseAvailability
	Type         *models.CourseType
	Category     *string
	Duration     *string
	Difficulty   *models.CourseDifficulty
}

// RequestAccessInput carries a learner's request to use a course.
type RequestAccessInput struct {
	CourseID    uint
	RequesterID uint
	Reason      string
	TimeWindow  string
}

// ListCourses returns available courses matching the filter.
func (s *CourseService) ListCourses(ctx context.Context, filter repository.CourseFilter) ([]models.Course, error) {
	return s.courseRepo.List(ctx, filter)
}

// GetCourseByID returns a single course with its owner populated.
func (s *CourseService) GetCourseByID(ctx context.Context, id uint) (*models.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// CreateCourse creates a listing owned by the caller, applying defaults.
func (s *CourseService) CreateCourse(ctx context.Context, in CreateCourseInput) (*models.Course, error) {
	if in.Title == "" || in.Description == "" || in.Platform == "" || in.Category == "" {
		return nil, models.NewValidationError("Title, description, platform and category are required")
	}
	if in.Type != models.CourseTypeLend && in.Type != models.CourseTypeExchange {
		return nil, models.NewValidationError("Type must be 'lend' or 'exchange'")
	}
	if in.ImageURL == "" {
		in.ImageURL = models.DefaultCourseImageURL
	}
	if in.Difficulty == "" {
		in.Difficulty = models.DifficultyBeginner
	}

	course := &models.Course{
		Title:        in.Title,
		Description:  in.Description,
		Platform:     in.Platform,
		ImageURL:     in.ImageURL,
		Availability: models.CourseAvailable,
		Type:         in.Type,
		OwnerID:      in.OwnerID,
		Category:     in.Category,
		Duration:     in.Duration,
		Difficulty:   in.Difficulty,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return s.courseRepo.GetByID(ctx, course.ID)
}

// UpdateCourse applies the given changes to a course owned by the caller.
func (s *CourseService) UpdateCourse(ctx context.Context, callerID, courseID uint, in UpdateCourseInput) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.OwnerID != callerID {
		return nil, models.NewForbiddenError("Not authorized to update this course")
	}

	if in.Title != nil {
		course.Title = *in.Title
	}
	if in.Description != nil {
		course.Description = *in.Description
	}
	if in.Platform != nil {
		course.Platform = *in.Platform
	}
	if in.ImageURL != nil {
		course.ImageURL = *in.ImageURL
	}
	if in.Availability != nil {
		course.Availability = *in.Availability
	}
	if in.Type != nil {
		course.Type = *in.Type
	}
	if in.Category != nil {
		course.Category = *in.Category
	}
	if in.Duration != nil {
		course.Duration = *in.Duration
	}
	if in.Difficulty != nil {
		course.Difficulty = *in.Difficulty
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// DeleteCourse removes a course owned by the caller.
func (s *CourseService) DeleteCourse(ctx context.Context, callerID, courseID uint) error {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return err
	}
	if course.OwnerID != callerID {
		return models.NewForbiddenError("Not authorized to delete this course")
	}
	return s.courseRepo.Delete(ctx, courseID)
}

// RequestAccess creates a pending access request for a course. A user cannot
// request their own course, and at most one active request per
// (course, requester) pair may exist; concurrent duplicates are rejected by
// the database's partial unique index.
func (s *CourseService) RequestAccess(ctx context.Context, in RequestAccessInput) (*models.CourseRequest, error) {
	course, err := s.courseRepo.GetByID(ctx, in.CourseID)
	if err != nil {
		return nil, err
	}
	if course.OwnerID == in.RequesterID {
		return nil, models.NewValidationError("Cannot request access to your own course")
	}

	active, err := s.requestRepo.HasActive(ctx, in.CourseID, in.RequesterID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, models.NewConflictError("Request already exists")
	}

	request := &models.CourseRequest{
		CourseID:    in.CourseID,
		RequesterID: in.RequesterID,
		OwnerID:     course.OwnerID,
		Reason:      in.Reason,
		TimeWindow:  in.TimeWindow,
		Status:      models.RequestStatusPending,
	}
	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}
	return s.requestRepo.GetByID(ctx, request.ID)
}

// GetSentRequests returns the caller's outgoing requests, newest first.
func (s *CourseService) GetSentRequests(ctx context.Context, userID uint) ([]models.CourseRequest, error) {
	return s.requestRepo.ListByRequester(ctx, userID)
}

// GetReceivedRequests returns requests for the caller's courses, newest first.
func (s *CourseService) GetReceivedRequests(ctx context.Context, userID uint) ([]models.CourseRequest, error) {
	return s.requestRepo.ListByOwner(ctx, userID)
}

// UpdateRequestStatus lets a course owner approve or deny a pending request.
// Settled requests cannot transition again.
func (s *CourseService) UpdateRequestStatus(ctx context.Context, callerID, requestID uint, status models.RequestStatus, message string) (*models.CourseRequest, error) {
	if status != models.RequestStatusApproved && status != models.RequestStatusDenied {
		return nil, models.NewValidationError("Status must be 'approved' or 'denied'")
	}

	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.OwnerID != callerID {
		return nil, models.NewForbiddenError("Not authorized to update this request")
	}
	if request.Status != models.RequestStatusPending {
		return nil, models.NewValidationError("Request has already been " + string(request.Status))
	}

	if err := s.requestRepo.UpdateStatus(ctx, requestID, status, message); err != nil {
		return nil, err
	}
	return s.requestRepo.GetByID(ctx, requestID)
}
