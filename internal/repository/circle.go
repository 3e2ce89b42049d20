package repository

import (
	"context"
	"errors"
	"strings"

	"skillcircle/internal/cache"
	"skillcircle/internal/models"

	"gorm.io/gorm"
)

// CircleFilter narrows circle listings.
type CircleFilter struct {
	Topic      string
	SkillLevel models.CourseDifficulty
	Search     string
}

// circlePreloads applies the standard population for circle payloads.
func circlePreloads(db *gorm.DB) *gorm.DB {
	return db.Preload("Creator").Preload("Members")
}

// CircleRepository defines persistence operations for study circles.
type CircleRepository interface {
	Create(ctx context.Context, circle *models.StudyCircle) error
	GetByID(ctx context.Context, id uint) (*models.StudyCircle, error)
	List(ctx context.Context, filter CircleFilter) ([]models.StudyCircle, error)
	ListByMember(ctx context.Context, userID uint, limit int) ([]models.StudyCircle, error)
	CountByMember(ctx context.Context, userID uint) (int64, error)
	IsMember(ctx context.Context, circleID, userID uint) (bool, error)
	AddMember(ctx context.Context, circleID, userID uint) error
	RemoveMember(ctx context.Context, circleID, userID uint) error
	Update(ctx context.Context, circle *models.StudyCircle) error
	Delete(ctx context.Context, id uint) error
}

type circleRepository struct {
	db *gorm.DB
}

// NewCircleRepository creates a new circle repository
func NewCircleRepository(db *gorm.DB) CircleRepository {
	return &circleRepository{db: db}
}

// Create inserts the circle and its creator membership in one transaction so
// the creator-is-a-member invariant holds from the first read.
func (r *circleRepository) Create(ctx context.Context, circle *models.StudyCircle) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		circle.MemberCount = 1
		if err := tx.Omit("Members").Create(circle).Error; err != nil {
			return err
		}
		return tx.Create(&models.CircleMember{
			CircleID: circle.ID,
			UserID:   circle.CreatorID,
		}).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *circleRepository) GetByID(ctx context.Context, id uint) (*models.StudyCircle, error) {
	var circle models.StudyCircle
	if err := circlePreloads(r.db.WithContext(ctx)).First(&circle, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Study circle", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &circle, nil
}

// List returns active circles matching the filter, newest first.
func (r *circleRepository) List(ctx context.Context, filter CircleFilter) ([]models.StudyCircle, error) {
	var circles []models.StudyCircle

	query := r.db.WithContext(ctx).Where("is_active = ?", true)

	if filter.Topic != "" {
		query = query.Where("LOWER(topic) LIKE ?", "%"+strings.ToLower(filter.Topic)+"%")
	}
	if filter.SkillLevel != "" {
		query = query.Where("skill_level = ?", filter.SkillLevel)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(topic) LIKE ?", pattern, pattern)
	}

	if err := circlePreloads(query).Order("created_at DESC").Find(&circles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return circles, nil
}

func (r *circleRepository) ListByMember(ctx context.Context, userID uint, limit int) ([]models.StudyCircle, error) {
	var circles []models.StudyCircle
	query := r.db.WithContext(ctx).
		Joins("JOIN circle_members cm ON cm.circle_id = study_circles.id").
		Where("cm.user_id = ?", userID).
		Preload("Creator").
		Order("study_circles.created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&circles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return circles, nil
}

func (r *circleRepository) CountByMember(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CircleMember{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *circleRepository) IsMember(ctx context.Context, circleID, userID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CircleMember{}).
		Where("circle_id = ? AND user_id = ?", circleID, userID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// AddMember appends a member while enforcing the capacity invariant. The
// member_count bump is a single conditional UPDATE, so two concurrent joins
// against a near-full circle cannot both succeed; the composite primary key
// on circle_members catches duplicate joins that race past the pre-check.
func (r *circleRepository) AddMember(ctx context.Context, circleID, userID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.CircleMember{}).
			Where("circle_id = ? AND user_id = ?", circleID, userID).
			Count(&count).Error; err != nil {
			return models.NewInternalError(err)
		}
		if count > 0 {
			return models.NewConflictError("Already a member of this circle")
		}

		res := tx.Model(&models.StudyCircle{}).
			Where("id = ? AND member_count < max_members", circleID).
			UpdateColumn("member_count", gorm.Expr("member_count + 1"))
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			// Circle is either absent or full; distinguish for the caller.
			var circle models.StudyCircle
			if err := tx.First(&circle, circleID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return models.NewNotFoundError("Study circle", circleID)
				}
				return models.NewInternalError(err)
			}
			return models.NewCapacityError("Study circle is full")
		}

		if err := tx.Create(&models.CircleMember{CircleID: circleID, UserID: userID}).Error; err != nil {
			if isUniqueConstraintError(err) {
				return models.NewConflictError("Already a member of this circle")
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err == nil {
		cache.InvalidateCircle(ctx, circleID)
	}
	return err
}

// RemoveMember deletes the membership row and decrements the counter in one
// transaction. Creator checks belong to the service layer.
func (r *circleRepository) RemoveMember(ctx context.Context, circleID, userID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("circle_id = ? AND user_id = ?", circleID, userID).
			Delete(&models.CircleMember{})
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewValidationError("Not a member of this circle")
		}
		if err := tx.Model(&models.StudyCircle{}).
			Where("id = ?", circleID).
			UpdateColumn("member_count", gorm.Expr("member_count - 1")).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err == nil {
		cache.InvalidateCircle(ctx, circleID)
	}
	return err
}

func (r *circleRepository) Update(ctx context.Context, circle *models.StudyCircle) error {
	if err := r.db.WithContext(ctx).
		Omit("Members", "Creator", "MemberCount").
		Save(circle).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateCircle(ctx, circle.ID)
	return nil
}

// Delete removes the circle together with its memberships and group thread.
func (r *circleRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("circle_id = ?", id).Delete(&models.CircleMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("circle_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.StudyCircle{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateCircle(ctx, id)
	return nil
}
