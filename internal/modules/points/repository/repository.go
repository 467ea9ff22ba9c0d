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
	"gorm.io/gorm/clause"
)

// PointsRepository owns the ledger and the per-user aggregate. Every method
// joins the transaction carried by ctx, if any.
type PointsRepository interface {
	EnsureStats(ctx context.Context, userID uuid.UUID) error
	FindStats(ctx context.Context, userID uuid.UUID) (*entity.UserStats, error)
	FindStatsForUpdate(ctx context.Context, userID uuid.UUID) (*entity.UserStats, error)
	SaveStats(ctx context.Context, stats *entity.UserStats) error
	ListStatsUserIDs(ctx context.Context) ([]uuid.UUID, error)

	CreatePointLog(ctx context.Context, log *entity.PointLog) error
	GetHistory(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.PointLog, error)
	SumPoints(ctx context.Context, userID uuid.UUID) (int, error)
}

type pointsRepository struct {
	db *gorm.DB
}

func NewPointsRepository(db *gorm.DB) PointsRepository {
	return &pointsRepository{db: db}
}

// EnsureStats inserts a zeroed level-1 aggregate unless one exists.
func (r *pointsRepository) EnsureStats(ctx context.Context, userID uuid.UUID) error {
	err := database.Conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&entity.UserStats{
		UserID: userID,
		Level:  1,
	}).Error
	if err != nil {
		return fmt.Errorf("ensure user stats: %w", err)
	}
	return nil
}

func (r *pointsRepository) FindStats(ctx context.Context, userID uuid.UUID) (*entity.UserStats, error) {
	return r.findStats(database.Conn(ctx, r.db), userID)
}

func (r *pointsRepository) FindStatsForUpdate(ctx context.Context, userID uuid.UUID) (*entity.UserStats, error) {
	return r.findStats(database.ForUpdate(database.Conn(ctx, r.db)), userID)
}

func (r *pointsRepository) findStats(db *gorm.DB, userID uuid.UUID) (*entity.UserStats, error) {
	var stats entity.UserStats
	if err := db.Where("user_id = ?", userID).First(&stats).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrUserPointsNotFound
		}
		return nil, fmt.Errorf("find user stats: %w", err)
	}
	return &stats, nil
}

func (r *pointsRepository) SaveStats(ctx context.Context, stats *entity.UserStats) error {
	if err := database.Conn(ctx, r.db).Save(stats).Error; err != nil {
		return fmt.Errorf("save user stats: %w", err)
	}
	return nil
}

func (r *pointsRepository) ListStatsUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := database.Conn(ctx, r.db).Model(&entity.UserStats{}).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *pointsRepository) CreatePointLog(ctx context.Context, log *entity.PointLog) error {
	if err := database.Conn(ctx, r.db).Create(log).Error; err != nil {
		return fmt.Errorf("create point log: %w", err)
	}
	return nil
}

func (r *pointsRepository) GetHistory(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.PointLog, error) {
	var logs []entity.PointLog
	err := database.Conn(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	return logs, err
}

func (r *pointsRepository) SumPoints(ctx context.Context, userID uuid.UUID) (int, error) {
	var sum int
	err := database.Conn(ctx, r.db).Model(&entity.PointLog{}).
		Select("COALESCE(SUM(points), 0)").
		Where("user_id = ?", userID).
		Scan(&sum).Error
	return sum, err
}
