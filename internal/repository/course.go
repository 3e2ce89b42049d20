package repository

import (
	"context"
	"errors"
	"strings"

	"skillcircle/internal/models"

	"gorm.io/gorm"
)

// CourseFilter narrows course listings. All supplied fields must match.
type CourseFilter struct {
	Category   string
	Type       models.CourseType
	Difficulty models.CourseDifficulty
	Search     string
}

// CourseRepository defines persistence operations for course listings.
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id uint) (*models.Course, error)
	List(ctx context.Context, filter CourseFilter) ([]models.Course, error)
	ListByOwner(ctx context.Context, ownerID uint, limit int) ([]models.Course, error)
	CountByOwner(ctx context.Context, ownerID uint) (int64, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id uint) error
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	if err := r.db.WithContext(ctx).Create(course).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *courseRepository) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).Preload("Owner").First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Course", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &course, nil
}

// List returns available courses matching the filter, newest first.
func (r *courseRepository) List(ctx context.Context, filter CourseFilter) ([]models.Course, error) {
	var courses []models.Course

	query := r.db.WithContext(ctx).
		Where("availability = ?", models.CourseAvailable)

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	if err := query.Preload("Owner").Order("created_at DESC").Find(&courses).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return courses, nil
}

func (r *courseRepository) ListByOwner(ctx context.Context, ownerID uint, limit int) ([]models.Course, error) {
	var courses []models.Course
	query := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Preload("Owner").
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&courses).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return courses, nil
}

func (r *courseRepository) CountByOwner(ctx context.Context, ownerID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Course{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	if err := r.db.WithContext(ctx).Save(course).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *courseRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Course{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
