package service

import (
	"context"

	"skillcircle/internal/models"
	"skillcircle/internal/repository"
)

// CircleService provides study-circle business logic.
type CircleService struct {
	circleRepo repository.CircleRepository
}

// NewCircleService returns a new CircleService.
func NewCircleService(circleRepo repository.CircleRepository) *CircleService {
	return &CircleService{circleRepo: circleRepo}
}

// CreateCircleInput carries the fields for a new study circle.
type CreateCircleInput struct {
	CreatorID    uint
	Name         string
	Topic        string
	SkillLevel   models.CourseDifficulty
	Availability string
	Goals        string
	Resources    []string
	MaxMembers   int
}

// UpdateCircleInput carries the replaceable fields of an existing circle.
// Nil pointers leave the stored value unchanged. Membership and capacity
// are managed through Join/Leave, not here.
type UpdateCircleInput struct {
	Name         *string
	Topic        *string
	SkillLevel   *models.CourseDifficulty
	Availability *string
	Goals        *string
	Resources    []string
	IsActive     *bool
}

// ListCircles returns active circles matching the filter.
func (s *CircleService) ListCircles(ctx context.Context, filter repository.CircleFilter) ([]models.StudyCircle, error) {
	return s.circleRepo.List(ctx, filter)
}

// GetCircleByID returns a single circle with creator and members populated.
func (s *CircleService) GetCircleByID(ctx context.Context, id uint) (*models.StudyCircle, error) {
	return s.circleRepo.GetByID(ctx, id)
}

// CreateCircle creates a circle with the creator as its first member.
func (s *CircleService) CreateCircle(ctx context.Context, in CreateCircleInput) (*models.StudyCircle, error) {
	if in.Name == "" || in.Topic == "" || in.Goals == "" {
		return nil, models.NewValidationError("Name, topic and goals are required")
	}
	if in.SkillLevel == "" {
		in.SkillLevel = models.DifficultyBeginner
	}
	if in.MaxMembers <= 0 {
		in.MaxMembers = models.DefaultMaxMembers
	}

	circle := &models.StudyCircle{
		Name:         in.Name,
		Topic:        in.Topic,
		SkillLevel:   in.SkillLevel,
		Availability: in.Availability,
		Goals:        in.Goals,
		Resources:    in.Resources,
		CreatorID:    in.CreatorID,
		MaxMembers:   in.MaxMembers,
		IsActive:     true,
	}
	if err := s.circleRepo.Create(ctx, circle); err != nil {
		return nil, err
	}
	return s.circleRepo.GetByID(ctx, circle.ID)
}

// JoinCircle adds the caller to a circle. Capacity is enforced atomically by
// the repository, so concurrent joins never push a circle past MaxMembers.
func (s *CircleService) JoinCircle(ctx context.Context, userID, circleID uint) (*models.StudyCircle, error) {
	if err := s.circleRepo.AddMember(ctx, circleID, userID); err != nil {
		return nil, err
	}
	return s.circleRepo.GetByID(ctx, circleID)
}

// LeaveCircle removes the caller from a circle. The creator cannot leave
// their own circle; they must delete it instead.
func (s *CircleService) LeaveCircle(ctx context.Context, userID, circleID uint) (*models.StudyCircle, error) {
	circle, err := s.circleRepo.GetByID(ctx, circleID)
	if err != nil {
		return nil, err
	}
	if circle.CreatorID == userID {
		return nil, models.NewValidationError("Circle creator cannot leave; delete the circle instead")
	}

	if err := s.circleRepo.RemoveMember(ctx, circleID, userID); err != nil {
		return nil, err
	}
	return s.circleRepo.GetByID(ctx, circleID)
}

// UpdateCircle applies the given changes to a circle created by the caller.
func (s *CircleService) UpdateCircle(ctx context.Context, callerID, circleID uint, in UpdateCircleInput) (*models.StudyCircle, error) {
	circle, err := s.circleRepo.GetByID(ctx, circleID)
	if err != nil {
		return nil, err
	}
	if circle.CreatorID != callerID {
		return nil, models.NewForbiddenError("Not authorized to update this circle")
	}

	if in.Name != nil {
		circle.Name = *in.Name
	}
	if in.Topic != nil {
		circle.Topic = *in.Topic
	}
	if in.SkillLevel != nil {
		circle.SkillLevel = *in.SkillLevel
	}
	if in.Availability != nil {
		circle.Availability = *in.Availability
	}
	if in.Goals != nil {
		circle.Goals = *in.Goals
	}
	if in.Resources != nil {
		circle.Resources = in.Resources
	}
	if in.IsActive != nil {
		circle.IsActive = *in.IsActive
	}

	if err := s.circleRepo.Update(ctx, circle); err != nil {
		return nil, err
	}
	return s.circleRepo.GetByID(ctx, circleID)
}

// DeleteCircle removes a circle created by the caller, along with its
// memberships and group messages.
func (s *CircleService) DeleteCircle(ctx context.Context, callerID, circleID uint) error {
	circle, err := s.circleRepo.GetByID(ctx, circleID)
	if err != nil {
		return err
	}
	if circle.CreatorID != callerID {
		return models.NewForbiddenError("Not authorized to delete this circle")
	}
	return s.circleRepo.Delete(ctx, circleID)
}
