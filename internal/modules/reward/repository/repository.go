package repository

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/fitquest/internal/entity"
	"anoa.com/fitquest/pkg/apperror"
	"anoa.com/fitquest/pkg/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RewardRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reward, error)
	ListActive(ctx context.Context) ([]entity.Reward, error)
	ListAll(ctx context.Context) ([]entity.Reward, error)

	CreateRedemption(ctx context.Context, redemption *entity.RewardRedemption) error
	ListRedemptions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.RewardRedemption, error)
	SumRedeemed(ctx context.Context, userID uuid.UUID) (int, error)
}

type rewardRepository struct {
	db *gorm.DB
}

func NewRewardRepository(db *gorm.DB) RewardRepository {
	return &rewardRepository{db: db}
}

func (r *rewardRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reward, error) {
	var reward entity.Reward
	if err := database.Conn(ctx, r.db).Where("id = ?", id).First(&reward).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrRewardNotFound
		}
		return nil, fmt.Errorf("find reward: %w", err)
	}
	return &reward, nil
}

func (r *rewardRepository) ListActive(ctx context.Context) ([]entity.Reward, error) {
	var rewards []entity.Reward
	err := database.Conn(ctx, r.db).
		Where("is_active = ?", true).
		Order("points_cost ASC, name ASC").
		Find(&rewards).Error
	return rewards, err
}

func (r *rewardRepository) ListAll(ctx context.Context) ([]entity.Reward, error) {
	var rewards []entity.Reward
	err := database.Conn(ctx, r.db).Order("points_cost ASC, name ASC").Find(&rewards).Error
	return rewards, err
}

func (r *rewardRepository) CreateRedemption(ctx context.Context, redemption *entity.RewardRedemption) error {
	if err := database.Conn(ctx, r.db).Create(redemption).Error; err != nil {
		return fmt.Errorf("create redemption: %w", err)
	}
	return nil
}

func (r *rewardRepository) ListRedemptions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.RewardRedemption, error) {
	var redemptions []entity.RewardRedemption
	err := database.Conn(ctx, r.db).
		Where("user_id = ?", userID).
		Order("redeemed_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&redemptions).Error
	return redemptions, err
}

func (r *rewardRepository) SumRedeemed(ctx context.Context, userID uuid.UUID) (int, error) {
	var sum int
	err := database.Conn(ctx, r.db).Model(&entity.RewardRedemption{}).
		Select("COALESCE(SUM(points_spent), 0)").
		Where("user_id = ?", userID).
		Scan(&sum).Error
	return sum, err
}
