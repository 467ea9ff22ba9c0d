package repository

import (
	"context"
	"time"

	"anoa.com/fitquest/internal/entity"
	"anoa.com/fitquest/pkg/database"
	"gorm.io/gorm"
)

type StatRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountActiveUsers(ctx context.Context) (int64, error)
	SumAwarded(ctx context.Context) (int64, error)
	SumRedeemed(ctx context.Context) (int64, error)
	CountActivitiesBetween(ctx context.Context, from, to time.Time) (int64, error)
	CountUnlocks(ctx context.Context) (int64, error)
}

type statRepository struct {
	db *gorm.DB
}

func NewStatRepository(db *gorm.DB) StatRepository {
	return &statRepository{db: db}
}

func (r *statRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := database.Conn(ctx, r.db).Model(&entity.User{}).Count(&count).Error
	return count, err
}

// CountActiveUsers counts users holding an aggregate, i.e. who earned points at least once.
func (r *statRepository) CountActiveUsers(ctx context.Context) (int64, error) {
	var count int64
	err := database.Conn(ctx, r.db).Model(&entity.UserStats{}).Count(&count).Error
	return count, err
}

func (r *statRepository) SumAwarded(ctx context.Context) (int64, error) {
	var sum int64
	err := database.Conn(ctx, r.db).Model(&entity.PointLog{}).
		Select("COALESCE(SUM(points), 0)").Scan(&sum).Error
	return sum, err
}

func (r *statRepository) SumRedeemed(ctx context.Context) (int64, error) {
	var sum int64
	err := database.Conn(ctx, r.db).Model(&entity.RewardRedemption{}).
		Select("COALESCE(SUM(points_spent), 0)").Scan(&sum).Error
	return sum, err
}

func (r *statRepository) CountActivitiesBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := database.Conn(ctx, r.db).Model(&entity.ActivityLog{}).
		Where("occurred_at >= ? AND occurred_at < ?", from.UTC(), to.UTC()).
		Count(&count).Error
	return count, err
}

func (r *statRepository) CountUnlocks(ctx context.Context) (int64, error) {
	var count int64
	err := database.Conn(ctx, r.db).Model(&entity.UserAchievement{}).Count(&count).Error
	return count, err
}
