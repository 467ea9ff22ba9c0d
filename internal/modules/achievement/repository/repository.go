package repository

import (
	"context"
	"fmt"

	"anoa.com/fitquest/internal/entity"
	"anoa.com/fitquest/pkg/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AchievementRepository interface {
	// ListCatalog returns every definition in evaluation order.
	ListCatalog(ctx context.Context) ([]entity.Achievement, error)
	ListUnlocks(ctx context.Context, userID uuid.UUID) ([]entity.UserAchievement, error)
	// CreateUnlock reports whether a row was written. An existing unlock is left untouched.
	CreateUnlock(ctx context.Context, unlock *entity.UserAchievement) (bool, error)
}

type achievementRepository struct {
	db *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) ListCatalog(ctx context.Context) ([]entity.Achievement, error) {
	var achievements []entity.Achievement
	err := database.Conn(ctx, r.db).
		Order("sort_order ASC, id ASC").
		Find(&achievements).Error
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	return achievements, nil
}

func (r *achievementRepository) ListUnlocks(ctx context.Context, userID uuid.UUID) ([]entity.UserAchievement, error) {
	var unlocks []entity.UserAchievement
	err := database.Conn(ctx, r.db).
		Where("user_id = ?", userID).
		Order("unlocked_date ASC, created_at ASC").
		Find(&unlocks).Error
	if err != nil {
		return nil, fmt.Errorf("list user achievements: %w", err)
	}
	return unlocks, nil
}

func (r *achievementRepository) CreateUnlock(ctx context.Context, unlock *entity.UserAchievement) (bool, error) {
	result := database.Conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "achievement_id"}},
		DoNothing: true,
	}).Create(unlock)
	if result.Error != nil {
		return false, fmt.Errorf("create user achievement: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
