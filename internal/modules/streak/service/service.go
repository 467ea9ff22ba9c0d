package service

import (
	"context"
	"errors"
	"time"

	"anoa.com/fitquest/internal/config"
	"anoa.com/fitquest/internal/entity"
	achievementService "anoa.com/fitquest/internal/modules/achievement/service"
	pointsRepo "anoa.com/fitquest/internal/modules/points/repository"
	streakDto "anoa.com/fitquest/internal/modules/streak/dto"
	streakRepo "anoa.com/fitquest/internal/modules/streak/repository"
	"anoa.com/fitquest/pkg/apperror"
	"anoa.com/fitquest/pkg/database"
	"anoa.com/fitquest/pkg/validator"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type StreakService interface {
	// RecordDailyActivity logs a qualifying activity, advances or resets the
	// category streak and re-evaluates achievements in the same transaction.
	RecordDailyActivity(ctx context.Context, userID uuid.UUID, category string, occurredAt time.Time) (*streakDto.StreakResult, error)
}

type streakService struct {
	repo               streakRepo.ActivityRepository
	pointsRepo         pointsRepo.PointsRepository
	achievementService achievementService.AchievementService
	tx                 database.Transactor
	loc                *time.Location
	sameDayPolicy      string
	log                *zap.Logger
}

func NewStreakService(
	repo streakRepo.ActivityRepository,
	pointsRepo pointsRepo.PointsRepository,
	achievementService achievementService.AchievementService,
	tx database.Transactor,
	loc *time.Location,
	sameDayPolicy string,
	log *zap.Logger,
) StreakService {
	if loc == nil {
		loc = time.UTC
	}
	if sameDayPolicy == "" {
		sameDayPolicy = config.SameDayOncePerDay
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &streakService{
		repo:               repo,
		pointsRepo:         pointsRepo,
		achievementService: achievementService,
		tx:                 tx,
		loc:                loc,
		sameDayPolicy:      sameDayPolicy,
		log:                log,
	}
}

func (s *streakService) RecordDailyActivity(ctx context.Context, userID uuid.UUID, category string, occurredAt time.Time) (*streakDto.StreakResult, error) {
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}
	if err := validator.Struct(streakDto.RecordActivityRequest{UserID: userID, Category: category, OccurredAt: occurredAt}); err != nil {
		return nil, err
	}

	// Local midnight of the activity day and of the day before it.
	y, m, d := occurredAt.In(s.loc).Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, s.loc)
	yesterdayStart := dayStart.AddDate(0, 0, -1)
	activityDate := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	result := &streakDto.StreakResult{Category: category, ActivityDate: activityDate}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.CreateActivityLog(ctx, &entity.ActivityLog{
			UserID:     userID,
			Category:   category,
			OccurredAt: occurredAt.UTC(),
		}); err != nil {
			return err
		}

		stats, err := s.pointsRepo.FindStatsForUpdate(ctx, userID)
		if errors.Is(err, apperror.ErrUserPointsNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		result.Streak, _ = stats.Streak(category)
		if s.shouldAdvance(stats.LastActiveDate(category), activityDate) {
			continued, err := s.repo.CountActivities(ctx, userID, category, yesterdayStart, dayStart)
			if err != nil {
				return err
			}

			if continued > 0 {
				result.Streak++
			} else {
				result.Streak = 1
			}
			stats.SetStreak(category, result.Streak)
			stats.SetLastActiveDate(category, activityDate)
			if err := s.pointsRepo.SaveStats(ctx, stats); err != nil {
				return err
			}
			result.Updated = true
		}

		if s.achievementService != nil {
			result.Unlocked, err = s.achievementService.EvaluateAndUnlock(ctx, userID)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Updated {
		s.log.Info("streak updated",
			zap.String("user_id", userID.String()),
			zap.String("category", category),
			zap.Int("streak", result.Streak),
		)
	}
	return result, nil
}

// shouldAdvance decides whether the continue/reset rule runs for this write.
// Writes dated before the last active day never touch the counter.
func (s *streakService) shouldAdvance(lastActive *time.Time, activityDate time.Time) bool {
	if lastActive == nil {
		return true
	}
	last := lastActive.UTC()
	switch {
	case last.After(activityDate):
		return false
	case last.Equal(activityDate):
		return s.sameDayPolicy == config.SameDayEveryActivity
	}
	return true
}
