package service_test

import (
	"context"
	"testing"
	"time"

	"anoa.com/fitquest/internal/entity"
	achievementRepo "anoa.com/fitquest/internal/modules/achievement/repository"
	achievementService "anoa.com/fitquest/internal/modules/achievement/service"
	notifRepo "anoa.com/fitquest/internal/modules/notification/repository"
	notifService "anoa.com/fitquest/internal/modules/notification/service"
	pointsDto "anoa.com/fitquest/internal/modules/points/dto"
	pointsRepo "anoa.com/fitquest/internal/modules/points/repository"
	pointsService "anoa.com/fitquest/internal/modules/points/service"
	"anoa.com/fitquest/internal/testutil"
	"anoa.com/fitquest/pkg/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2026, 3, 14, 22, 30, 0, 0, time.UTC)

func newServices(db *gorm.DB) (achievementService.AchievementService, pointsService.PointsService) {
	tx := database.NewTransactor(db)
	points := pointsRepo.NewPointsRepository(db)
	notifications := notifService.NewNotificationService(notifRepo.NewNotificationRepository(db), nil, nil)

	achievements := achievementService.NewAchievementService(
		achievementRepo.NewAchievementRepository(db), points, tx, notifications, time.UTC, nil,
		achievementService.WithClock(func() time.Time { return fixedNow }),
	)
	return achievements, pointsService.NewPointsService(points, tx, notifications, nil)
}

func TestShouldUnlock(t *testing.T) {
	stats := &entity.UserStats{TotalPoints: 500, Level: 2, WorkoutStreak: 3}

	tests := []struct {
		name        string
		achievement entity.Achievement
		want        bool
	}{
		{"points met", entity.Achievement{Type: entity.AchievementTypePoints, Requirement: 500}, true},
		{"points short", entity.Achievement{Type: entity.AchievementTypePoints, Requirement: 501}, false},
		{"streak met", entity.Achievement{Type: entity.AchievementTypeStreak, Category: entity.CategoryWorkout, Requirement: 3}, true},
		{"streak other category", entity.Achievement{Type: entity.AchievementTypeStreak, Category: entity.CategoryDiet, Requirement: 1}, false},
		{"streak unknown category", entity.Achievement{Type: entity.AchievementTypeStreak, Category: "sleep", Requirement: 0}, false},
		{"level met", entity.Achievement{Type: entity.AchievementTypeLevel, Requirement: 2}, true},
		{"level short", entity.Achievement{Type: entity.AchievementTypeLevel, Requirement: 3}, false},
		{"unknown type", entity.Achievement{Type: "social", Requirement: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := achievementService.ShouldUnlock(tt.achievement, stats); got != tt.want {
				t.Errorf("ShouldUnlock() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateUnlocksThresholdWithBonus(t *testing.T) {
	db := testutil.NewDB(t)
	achievements, points := newServices(db)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "threshold")

	testutil.CreateAchievement(t, db, entity.Achievement{
		ID: "first_steps", Name: "First Steps", Type: entity.AchievementTypePoints, Requirement: 100, BonusPoints: 20,
	})

	for _, amount := range []int{95, 10} {
		if _, err := points.AwardPoints(ctx, pointsDto.AwardPointsRequest{UserID: user.ID, Amount: amount, Activity: "workout_logged"}); err != nil {
			t.Fatalf("AwardPoints: %v", err)
		}
	}

	unlocked, err := achievements.EvaluateAndUnlock(ctx, user.ID)
	if err != nil {
		t.Fatalf("EvaluateAndUnlock: %v", err)
	}
	if len(unlocked) != 1 || unlocked[0].ID != "first_steps" {
		t.Fatalf("unlocked = %+v, want [first_steps]", unlocked)
	}

	stats := testutil.ReloadStats(t, db, user.ID)
	if stats.TotalPoints != 125 {
		t.Errorf("total = %d, want 125", stats.TotalPoints)
	}
	if stats.WeeklyPoints != 105 {
		t.Errorf("weekly = %d, want 105 (bonus is not a rollup credit)", stats.WeeklyPoints)
	}
	if got := testutil.LedgerSum(t, db, user.ID); got != stats.TotalPoints {
		t.Errorf("ledger sum %d != total %d", got, stats.TotalPoints)
	}

	var rows []entity.UserAchievement
	db.Where("user_id = ?", user.ID).Find(&rows)
	if len(rows) != 1 {
		t.Fatalf("unlock rows = %d, want 1", len(rows))
	}
	wantDate := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	if !rows[0].UnlockedDate.Equal(wantDate) {
		t.Errorf("unlocked date = %v, want %v", rows[0].UnlockedDate, wantDate)
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	achievements, _ := newServices(db)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "twice")

	testutil.CreateStats(t, db, &entity.UserStats{UserID: user.ID, TotalPoints: 700, WorkoutStreak: 3})
	for _, a := range []entity.Achievement{
		{ID: "first_steps", Name: "First Steps", Type: entity.AchievementTypePoints, Requirement: 100, BonusPoints: 20, SortOrder: 1},
		{ID: "workout_streak_3", Name: "Warming Up", Type: entity.AchievementTypeStreak, Category: entity.CategoryWorkout, Requirement: 3, BonusPoints: 30, SortOrder: 2},
		{ID: "points_2000", Name: "Point Hoarder", Type: entity.AchievementTypePoints, Requirement: 2000, BonusPoints: 150, SortOrder: 3},
	} {
		testutil.CreateAchievement(t, db, a)
	}

	first, err := achievements.EvaluateAndUnlock(ctx, user.ID)
	if err != nil {
		t.Fatalf("first evaluate: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("first pass unlocked %d, want 2", len(first))
	}
	afterFirst := testutil.ReloadStats(t, db, user.ID)

	second, err := achievements.EvaluateAndUnlock(ctx, user.ID)
	if err != nil {
		t.Fatalf("second evaluate: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("second pass unlocked %+v, want none", second)
	}

	afterSecond := testutil.ReloadStats(t, db, user.ID)
	if afterSecond.TotalPoints != afterFirst.TotalPoints || afterFirst.TotalPoints != 750 {
		t.Errorf("totals = %d then %d, want 750 both times", afterFirst.TotalPoints, afterSecond.TotalPoints)
	}

	var count int64
	db.Model(&entity.UserAchievement{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 2 {
		t.Errorf("unlock rows = %d, want 2", count)
	}
}

func TestEvaluateLaterDefinitionsSeeEarlierBonuses(t *testing.T) {
	db := testutil.NewDB(t)
	achievements, _ := newServices(db)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "cascade")

	testutil.CreateStats(t, db, &entity.UserStats{UserID: user.ID, TotalPoints: 150})
	testutil.CreateAchievement(t, db, entity.Achievement{ID: "big_bonus", Name: "Big Bonus", Type: entity.AchievementTypePoints, Requirement: 100, BonusPoints: 500, SortOrder: 1})
	testutil.CreateAchievement(t, db, entity.Achievement{ID: "level_3", Name: "Athlete", Type: entity.AchievementTypeLevel, Requirement: 3, BonusPoints: 0, SortOrder: 2})

	unlocked, err := achievements.EvaluateAndUnlock(ctx, user.ID)
	if err != nil {
		t.Fatalf("EvaluateAndUnlock: %v", err)
	}
	if len(unlocked) != 2 || unlocked[0].ID != "big_bonus" || unlocked[1].ID != "level_3" {
		t.Fatalf("unlocked = %+v, want [big_bonus level_3]", unlocked)
	}

	stats := testutil.ReloadStats(t, db, user.ID)
	if stats.TotalPoints != 650 || stats.Level != 3 {
		t.Errorf("stats total=%d level=%d, want 650/3", stats.TotalPoints, stats.Level)
	}

	var levelUps int64
	db.Model(&entity.Notification{}).Where("user_id = ? AND type = ?", user.ID, entity.NotificationLevelUp).Count(&levelUps)
	if levelUps != 1 {
		t.Errorf("level_up notifications = %d, want 1", levelUps)
	}
}

func TestEvaluateWithoutAggregateIsNoop(t *testing.T) {
	db := testutil.NewDB(t)
	achievements, _ := newServices(db)
	testutil.CreateAchievement(t, db, entity.Achievement{ID: "zero", Name: "Zero", Type: entity.AchievementTypePoints, Requirement: 0, BonusPoints: 5})

	unlocked, err := achievements.EvaluateAndUnlock(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("EvaluateAndUnlock: %v", err)
	}
	if len(unlocked) != 0 {
		t.Errorf("unlocked = %+v, want none", unlocked)
	}

	var count int64
	db.Model(&entity.UserStats{}).Count(&count)
	if count != 0 {
		t.Error("evaluation must not create an aggregate")
	}
}

func TestGetUserAchievementsMarksUnlocked(t *testing.T) {
	db := testutil.NewDB(t)
	achievements, _ := newServices(db)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "viewer")

	testutil.CreateStats(t, db, &entity.UserStats{UserID: user.ID, TotalPoints: 120})
	testutil.CreateAchievement(t, db, entity.Achievement{ID: "b_second", Name: "Second", Type: entity.AchievementTypePoints, Requirement: 5000, SortOrder: 1})
	testutil.CreateAchievement(t, db, entity.Achievement{ID: "a_first", Name: "First", Type: entity.AchievementTypePoints, Requirement: 100, SortOrder: 1})

	if _, err := achievements.EvaluateAndUnlock(ctx, user.ID); err != nil {
		t.Fatalf("EvaluateAndUnlock: %v", err)
	}

	list, err := achievements.GetUserAchievements(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserAchievements: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	// equal sort_order falls back to id
	if list[0].ID != "a_first" || !list[0].Unlocked || list[0].UnlockedDate == nil {
		t.Errorf("list[0] = %+v, want unlocked a_first", list[0])
	}
	if list[1].ID != "b_second" || list[1].Unlocked {
		t.Errorf("list[1] = %+v, want locked b_second", list[1])
	}
}
