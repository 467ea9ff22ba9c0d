package repository

import (
	"context"
	"fmt"

	"anoa.com/fitquest/internal/entity"
	"anoa.com/fitquest/pkg/database"
	"gorm.io/gorm"
)

// Ranking columns on user_stats.
const (
	ColumnTotal   = "total_points"
	ColumnWeekly  = "weekly_points"
	ColumnMonthly = "monthly_points"
)

type LeaderboardRepository interface {
	GetTopUsers(ctx context.Context, column string, limit int) ([]entity.UserStats, error)
}

type leaderboardRepository struct {
	db *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

// GetTopUsers orders aggregates by column descending, ties broken by user id.
func (r *leaderboardRepository) GetTopUsers(ctx context.Context, column string, limit int) ([]entity.UserStats, error) {
	switch column {
	case ColumnTotal, ColumnWeekly, ColumnMonthly:
	default:
		return nil, fmt.Errorf("unknown ranking column %q", column)
	}

	var stats []entity.UserStats
	err := database.Conn(ctx, r.db).
		Order(column + " DESC").
		Order("user_id ASC").
		Limit(limit).
		Find(&stats).Error
	return stats, err
}
