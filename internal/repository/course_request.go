package repository

import (
	"context"
	"errors"

	"skillcircle/internal/models"

	"gorm.io/gorm"
)

// requestPreloads applies the standard population for course request payloads.
func requestPreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Course", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "platform", "image_url", "owner_id")
		}).
		Preload("Requester").
		Preload("Owner")
}

// CourseRequestRepository defines persistence operations for course access requests.
type CourseRequestRepository interface {
	Create(ctx context.Context, request *models.CourseRequest) error
	GetByID(ctx context.Context, id uint) (*models.CourseRequest, error)
	HasActive(ctx context.Context, courseID, requesterID uint) (bool, error)
	ListByRequester(ctx context.Context, requesterID uint) ([]models.CourseRequest, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]models.CourseRequest, error)
	UpdateStatus(ctx context.Context, id uint, status models.RequestStatus, message string) error
	CountByRequester(ctx context.Context, requesterID uint) (int64, error)
	CountByOwner(ctx context.Context, ownerID uint, onlyPending bool) (int64, error)
}

type courseRequestRepository struct {
	db *gorm.DB
}

// NewCourseRequestRepository creates a new course request repository
func NewCourseRequestRepository(db *gorm.DB) CourseRequestRepository {
	return &courseRequestRepository{db: db}
}

// Create inserts a pending request. The partial unique index on
// (course_id, requester_id) for active statuses turns a lost
// check-then-act race into a conflict error here.
func (r *courseRequestRepository) Create(ctx context.Context, request *models.CourseRequest) error {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Request already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *courseRequestRepository) GetByID(ctx context.Context, id uint) (*models.CourseRequest, error) {
	var request models.CourseRequest
	if err := requestPreloads(r.db.WithContext(ctx)).First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Request", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &request, nil
}

func (r *courseRequestRepository) HasActive(ctx context.Context, courseID, requesterID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CourseRequest{}).
		Where("course_id = ? AND requester_id = ? AND status IN ?",
			courseID, requesterID,
			[]models.RequestStatus{models.RequestStatusPending, models.RequestStatusApproved}).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *courseRequestRepository) ListByRequester(ctx context.Context, requesterID uint) ([]models.CourseRequest, error) {
	var requests []models.CourseRequest
	if err := requestPreloads(r.db.WithContext(ctx)).
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return requests, nil
}

func (r *courseRequestRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.CourseRequest, error) {
	var requests []models.CourseRequest
	if err := requestPreloads(r.db.WithContext(ctx)).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return requests, nil
}

func (r *courseRequestRepository) UpdateStatus(ctx context.Context, id uint, status models.RequestStatus, message string) error {
	if err := r.db.WithContext(ctx).
		Model(&models.CourseRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "message": message}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *courseRequestRepository) CountByRequester(ctx context.Context, requesterID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CourseRequest{}).
		Where("requester_id = ?", requesterID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *courseRequestRepository) CountByOwner(ctx context.Context, ownerID uint, onlyPending bool) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&models.CourseRequest{}).
		Where("owner_id = ?", ownerID)
	if onlyPending {
		query = query.Where("status = ?", models.RequestStatusPending)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
