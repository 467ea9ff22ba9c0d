package repository

import (
	"context"
	"fmt"
	"time"

	"anoa.com/fitquest/internal/entity"
	"anoa.com/fitquest/pkg/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityRepository interface {
	CreateActivityLog(ctx context.Context, log *entity.ActivityLog) error
	// CountActivities counts logs for the category with occurred_at in [from, to).
	CountActivities(ctx context.Context, userID uuid.UUID, category string, from, to time.Time) (int64, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) CreateActivityLog(ctx context.Context, log *entity.ActivityLog) error {
	if err := database.Conn(ctx, r.db).Create(log).Error; err != nil {
		return fmt.Errorf("create activity log: %w", err)
	}
	return nil
}

func (r *activityRepository) CountActivities(ctx context.Context, userID uuid.UUID, category string, from, to time.Time) (int64, error) {
	var count int64
	err := database.Conn(ctx, r.db).Model(&entity.ActivityLog{}).
		Where("user_id = ? AND category = ? AND occurred_at >= ? AND occurred_at < ?", userID, category, from.UTC(), to.UTC()).
		Count(&count).Error
	return count, err
}
