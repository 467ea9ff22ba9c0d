package bootstrap

import (
	"fmt"

	"anoa.com/fitquest/internal/entity"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.UserStats{},
		&entity.PointLog{},
		&entity.ActivityLog{},
		&entity.Achievement{},
		&entity.UserAchievement{},
		&entity.Reward{},
		&entity.RewardRedemption{},
		&entity.Notification{},
	)
}

// DefaultAchievements is the catalog shipped with the service.
func DefaultAchievements() []entity.Achievement {
	return []entity.Achievement{
		{ID: "first_steps", Name: "First Steps", Description: "Earn your first 100 points", Icon: "👟", Type: entity.AchievementTypePoints, Requirement: 100, BonusPoints: 20, SortOrder: 10},
		{ID: "points_500", Name: "Getting Serious", Description: "Earn 500 points", Icon: "🔥", Type: entity.AchievementTypePoints, Requirement: 500, BonusPoints: 50, SortOrder: 20},
		{ID: "points_2000", Name: "Point Hoarder", Description: "Earn 2000 points", Icon: "💰", Type: entity.AchievementTypePoints, Requirement: 2000, BonusPoints: 150, SortOrder: 30},
		{ID: "workout_streak_3", Name: "Warming Up", Description: "Work out 3 days in a row", Icon: "💪", Type: entity.AchievementTypeStreak, Category: entity.CategoryWorkout, Requirement: 3, BonusPoints: 30, SortOrder: 40},
		{ID: "workout_streak_7", Name: "Week Warrior", Description: "Work out 7 days in a row", Icon: "🏋️", Type: entity.AchievementTypeStreak, Category: entity.CategoryWorkout, Requirement: 7, BonusPoints: 75, SortOrder: 50},
		{ID: "workout_streak_30", Name: "Iron Habit", Description: "Work out 30 days in a row", Icon: "🏆", Type: entity.AchievementTypeStreak, Category: entity.CategoryWorkout, Requirement: 30, BonusPoints: 300, SortOrder: 60},
		{ID: "diet_streak_7", Name: "Clean Plate", Description: "Log your meals 7 days in a row", Icon: "🥗", Type: entity.AchievementTypeStreak, Category: entity.CategoryDiet, Requirement: 7, BonusPoints: 70, SortOrder: 70},
		{ID: "mindful_streak_7", Name: "Mindful Week", Description: "Check in on your mental health 7 days in a row", Icon: "🧘", Type: entity.AchievementTypeStreak, Category: entity.CategoryMentalHealth, Requirement: 7, BonusPoints: 70, SortOrder: 80},
		{ID: "level_3", Name: "Athlete", Description: "Reach level 3", Icon: "⭐", Type: entity.AchievementTypeLevel, Requirement: 3, BonusPoints: 100, SortOrder: 90},
		{ID: "level_5", Name: "Elite", Description: "Reach level 5", Icon: "🌟", Type: entity.AchievementTypeLevel, Requirement: 5, BonusPoints: 250, SortOrder: 100},
	}
}

func DefaultRewards() []entity.Reward {
	return []entity.Reward{
		{Name: "Free smoothie", Description: "One smoothie at any partner juice bar", PointsCost: 300, IsActive: true},
		{Name: "Gym T-shirt", Description: "FitQuest branded training shirt", PointsCost: 800, IsActive: true},
		{Name: "Personal training session", Description: "One hour with a certified trainer", PointsCost: 1500, IsActive: true},
		{Name: "Premium month", Description: "One month of premium workout plans", PointsCost: 3000, IsActive: true},
	}
}

// SeedAchievements inserts missing catalog entries. Existing ones are left as is.
func SeedAchievements(db *gorm.DB) error {
	created := 0
	for _, achievement := range DefaultAchievements() {
		var count int64
		if err := db.Model(&entity.Achievement{}).
			Where("id = ?", achievement.ID).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&achievement).Error; err != nil {
				return fmt.Errorf("seed achievement %s: %w", achievement.ID, err)
			}
			created++
		}
	}

	zap.L().Info("achievements seeded", zap.Int("created", created))
	return nil
}

func SeedRewards(db *gorm.DB) error {
	created := 0
	for _, reward := range DefaultRewards() {
		var count int64
		if err := db.Model(&entity.Reward{}).
			Where("name = ?", reward.Name).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&reward).Error; err != nil {
				return fmt.Errorf("seed reward %s: %w", reward.Name, err)
			}
			created++
		}
	}

	zap.L().Info("rewards seeded", zap.Int("created", created))
	return nil
}

func SeedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.User{}).
		Where("username = ?", "admin").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		zap.L().Info("admin user already exists, skipping seed")
		return nil
	}

	admin := entity.User{
		Username:    "admin",
		DisplayName: stringPtr("Administrator"),
		Role:        entity.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	zap.L().Info("admin user seeded", zap.String("user_id", admin.ID.String()))
	return nil
}

// Seed runs every seeder in order.
func Seed(db *gorm.DB) error {
	if err := SeedAchievements(db); err != nil {
		return err
	}
	if err := SeedRewards(db); err != nil {
		return err
	}
	return SeedAdminUser(db)
}

func stringPtr(s string) *string {
	return &s
}
