// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"testing"

	"anoa.com/fitquest/internal/bootstrap"
	"anoa.com/fitquest/internal/entity"
	"anoa.com/fitquest/pkg/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewDB returns a migrated in-memory SQLite database closed at test cleanup.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(database.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := bootstrap.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// CreateUser inserts a member with the given username.
func CreateUser(t *testing.T, db *gorm.DB, username string) *entity.User {
	t.Helper()

	user := &entity.User{Username: username}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

// CreateStats inserts an aggregate with the given balance and level derived from it.
func CreateStats(t *testing.T, db *gorm.DB, stats *entity.UserStats) *entity.UserStats {
	t.Helper()

	if stats.Level == 0 {
		stats.Level = entity.LevelFor(stats.TotalPoints)
	}
	if err := db.Create(stats).Error; err != nil {
		t.Fatalf("create stats: %v", err)
	}
	return stats
}

// CreateAchievement inserts a catalog definition.
func CreateAchievement(t *testing.T, db *gorm.DB, achievement entity.Achievement) {
	t.Helper()

	if err := db.Create(&achievement).Error; err != nil {
		t.Fatalf("create achievement %s: %v", achievement.ID, err)
	}
}

// CreateReward inserts a reward and returns it with its generated id.
func CreateReward(t *testing.T, db *gorm.DB, name string, cost int, active bool) *entity.Reward {
	t.Helper()

	reward := &entity.Reward{Name: name, PointsCost: cost, IsActive: active}
	if err := db.Create(reward).Error; err != nil {
		t.Fatalf("create reward %s: %v", name, err)
	}
	return reward
}

// ReloadStats reads the aggregate back from the database.
func ReloadStats(t *testing.T, db *gorm.DB, userID uuid.UUID) *entity.UserStats {
	t.Helper()

	var fresh entity.UserStats
	if err := db.WithContext(context.Background()).Where("user_id = ?", userID).First(&fresh).Error; err != nil {
		t.Fatalf("reload stats: %v", err)
	}
	return &fresh
}

// LedgerSum returns sum(point_logs.points) - sum(reward_redemptions.points_spent) for a user.
func LedgerSum(t *testing.T, db *gorm.DB, userID uuid.UUID) int {
	t.Helper()

	var earned, spent int
	if err := db.Model(&entity.PointLog{}).Select("COALESCE(SUM(points), 0)").Where("user_id = ?", userID).Scan(&earned).Error; err != nil {
		t.Fatalf("sum ledger: %v", err)
	}
	if err := db.Model(&entity.RewardRedemption{}).Select("COALESCE(SUM(points_spent), 0)").Where("user_id = ?", userID).Scan(&spent).Error; err != nil {
		t.Fatalf("sum redemptions: %v", err)
	}
	return earned - spent
}
