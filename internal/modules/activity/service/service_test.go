package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"anoa.com/fitquest/internal/bootstrap"
	"anoa.com/fitquest/internal/config"
	"anoa.com/fitquest/internal/entity"
	achievementRepo "anoa.com/fitquest/internal/modules/achievement/repository"
	achievementService "anoa.com/fitquest/internal/modules/achievement/service"
	activityDto "anoa.com/fitquest/internal/modules/activity/dto"
	activityService "anoa.com/fitquest/internal/modules/activity/service"
	pointsRepo "anoa.com/fitquest/internal/modules/points/repository"
	pointsService "anoa.com/fitquest/internal/modules/points/service"
	streakDto "anoa.com/fitquest/internal/modules/streak/dto"
	streakRepo "anoa.com/fitquest/internal/modules/streak/repository"
	streakService "anoa.com/fitquest/internal/modules/streak/service"
	"anoa.com/fitquest/internal/testutil"
	"anoa.com/fitquest/pkg/apperror"
	"anoa.com/fitquest/pkg/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func newService(db *gorm.DB) activityService.ActivityService {
	tx := database.NewTransactor(db)
	points := pointsRepo.NewPointsRepository(db)
	achievements := achievementService.NewAchievementService(achievementRepo.NewAchievementRepository(db), points, tx, nil, time.UTC, nil)
	streaks := streakService.NewStreakService(streakRepo.NewActivityRepository(db), points, achievements, tx, time.UTC, config.SameDayOncePerDay, nil)
	return activityService.NewActivityService(pointsService.NewPointsService(points, tx, nil, nil), streaks, tx)
}

func TestLogActivityAwardsStreaksAndUnlocks(t *testing.T) {
	db := testutil.NewDB(t)
	if err := bootstrap.SeedAchievements(db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := newService(db)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "athlete")

	var last *activityDto.LogActivityResponse
	for d := 1; d <= 3; d++ {
		resp, err := svc.LogActivity(ctx, user.ID, activityDto.LogActivityRequest{
			Category:   entity.CategoryWorkout,
			OccurredAt: time.Date(2026, 6, d, 7, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("day %d: %v", d, err)
		}
		last = resp
	}

	if last.Streak.Streak != 3 {
		t.Errorf("streak = %d, want 3", last.Streak.Streak)
	}
	if last.Award.Entry.Activity != "workout_logged" || last.Award.Entry.Points != 50 {
		t.Errorf("award entry = %+v, want 50 points for workout_logged", last.Award.Entry)
	}

	// Day 1 crosses nothing; day 2 reaches 100 (first_steps +20); day 3 hits the 3-day streak (+30).
	ids := map[string]bool{}
	for _, a := range last.Unlocked {
		ids[a.ID] = true
	}
	if !ids["workout_streak_3"] {
		t.Errorf("day 3 unlocks = %+v, want workout_streak_3", last.Unlocked)
	}

	stats := testutil.ReloadStats(t, db, user.ID)
	if stats.TotalPoints != 200 {
		t.Errorf("total = %d, want 200", stats.TotalPoints)
	}
	if got := testutil.LedgerSum(t, db, user.ID); got != stats.TotalPoints {
		t.Errorf("ledger sum %d != total %d", got, stats.TotalPoints)
	}
}

func TestLogActivityRejectsUnknownCategory(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newService(db)

	_, err := svc.LogActivity(context.Background(), uuid.New(), activityDto.LogActivityRequest{Category: "sleep"})
	if !errors.Is(err, apperror.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

type failingStreaks struct{}

func (failingStreaks) RecordDailyActivity(context.Context, uuid.UUID, string, time.Time) (*streakDto.StreakResult, error) {
	return nil, errors.New("streak store unavailable")
}

func TestLogActivityRollsBackOnFailure(t *testing.T) {
	db := testutil.NewDB(t)
	tx := database.NewTransactor(db)
	points := pointsService.NewPointsService(pointsRepo.NewPointsRepository(db), tx, nil, nil)
	svc := activityService.NewActivityService(points, failingStreaks{}, tx)
	user := testutil.CreateUser(t, db, "unlucky")

	if _, err := svc.LogActivity(context.Background(), user.ID, activityDto.LogActivityRequest{Category: entity.CategoryDiet}); err == nil {
		t.Fatal("expected the streak failure to surface")
	}

	var logs, stats int64
	db.Model(&entity.PointLog{}).Count(&logs)
	db.Model(&entity.UserStats{}).Count(&stats)
	if logs != 0 || stats != 0 {
		t.Errorf("rows after rollback: point_logs=%d user_stats=%d, want 0/0", logs, stats)
	}
}
