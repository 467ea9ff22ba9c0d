package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"anoa.com/fitquest/internal/entity"
	achievementDto "anoa.com/fitquest/internal/modules/achievement/dto"
	achievementRepo "anoa.com/fitquest/internal/modules/achievement/repository"
	notifService "anoa.com/fitquest/internal/modules/notification/service"
	pointsRepo "anoa.com/fitquest/internal/modules/points/repository"
	"anoa.com/fitquest/pkg/apperror"
	"anoa.com/fitquest/pkg/database"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AchievementService interface {
	// EvaluateAndUnlock unlocks every catalog achievement the user now satisfies
	// and returns the newly unlocked ones. A user without an aggregate gets nothing.
	EvaluateAndUnlock(ctx context.Context, userID uuid.UUID) ([]entity.Achievement, error)
	GetUserAchievements(ctx context.Context, userID uuid.UUID) ([]achievementDto.UserAchievementResponse, error)
}

type Option func(*achievementService)

// WithClock overrides the time source used for unlock dates.
func WithClock(now func() time.Time) Option {
	return func(s *achievementService) { s.now = now }
}

type achievementService struct {
	repo                achievementRepo.AchievementRepository
	pointsRepo          pointsRepo.PointsRepository
	tx                  database.Transactor
	notificationService notifService.NotificationService
	loc                 *time.Location
	now                 func() time.Time
	log                 *zap.Logger
}

func NewAchievementService(
	repo achievementRepo.AchievementRepository,
	pointsRepo pointsRepo.PointsRepository,
	tx database.Transactor,
	notificationService notifService.NotificationService,
	loc *time.Location,
	log *zap.Logger,
	opts ...Option,
) AchievementService {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &achievementService{
		repo:                repo,
		pointsRepo:          pointsRepo,
		tx:                  tx,
		notificationService: notificationService,
		loc:                 loc,
		now:                 time.Now,
		log:                 log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ShouldUnlock reports whether stats meet the definition's requirement.
// Unknown types and unknown streak categories never unlock.
func ShouldUnlock(achievement entity.Achievement, stats *entity.UserStats) bool {
	switch achievement.Type {
	case entity.AchievementTypePoints:
		return stats.TotalPoints >= achievement.Requirement
	case entity.AchievementTypeStreak:
		streak, ok := stats.Streak(achievement.Category)
		return ok && streak >= achievement.Requirement
	case entity.AchievementTypeLevel:
		return stats.Level >= achievement.Requirement
	}
	return false
}

func (s *achievementService) EvaluateAndUnlock(ctx context.Context, userID uuid.UUID) ([]entity.Achievement, error) {
	var unlocked []entity.Achievement

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		unlocked = nil

		stats, err := s.pointsRepo.FindStatsForUpdate(ctx, userID)
		if errors.Is(err, apperror.ErrUserPointsNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		catalog, err := s.repo.ListCatalog(ctx)
		if err != nil {
			return err
		}
		existing, err := s.repo.ListUnlocks(ctx, userID)
		if err != nil {
			return err
		}
		have := make(map[string]bool, len(existing))
		for _, u := range existing {
			have[u.AchievementID] = true
		}

		previousLevel := stats.Level
		today := s.today()

		// stats is the running aggregate: a bonus granted here is visible to
		// every later definition in the same pass.
		for _, achievement := range catalog {
			if have[achievement.ID] || !ShouldUnlock(achievement, stats) {
				continue
			}

			created, err := s.repo.CreateUnlock(ctx, &entity.UserAchievement{
				UserID:        userID,
				AchievementID: achievement.ID,
				UnlockedDate:  today,
			})
			if err != nil {
				return err
			}
			if !created {
				continue
			}
			have[achievement.ID] = true

			if achievement.BonusPoints > 0 {
				stats.AddBonus(achievement.BonusPoints)
				if err := s.pointsRepo.CreatePointLog(ctx, &entity.PointLog{
					UserID:      userID,
					Points:      achievement.BonusPoints,
					Activity:    entity.ActivityAchievementUnlocked,
					Description: fmt.Sprintf("Achievement unlocked: %s", achievement.Name),
					ReferenceID: achievement.ID,
				}); err != nil {
					return err
				}
			}
			unlocked = append(unlocked, achievement)
		}

		if len(unlocked) == 0 {
			return nil
		}
		if err := s.pointsRepo.SaveStats(ctx, stats); err != nil {
			return err
		}
		return s.notify(ctx, stats, previousLevel, unlocked)
	})
	if err != nil {
		return nil, err
	}

	for _, a := range unlocked {
		s.log.Info("achievement unlocked",
			zap.String("user_id", userID.String()),
			zap.String("achievement_id", a.ID),
			zap.Int("bonus", a.BonusPoints),
		)
	}
	return unlocked, nil
}

func (s *achievementService) notify(ctx context.Context, stats *entity.UserStats, previousLevel int, unlocked []entity.Achievement) error {
	if s.notificationService == nil {
		return nil
	}
	for _, a := range unlocked {
		if err := s.notificationService.CreateNotification(ctx, notifService.AchievementUnlocked(stats.UserID, a)); err != nil {
			return err
		}
	}
	if stats.Level > previousLevel {
		return s.notificationService.CreateNotification(ctx, notifService.LevelUp(stats))
	}
	return nil
}

// today is the calendar date in the configured zone, stored as midnight UTC.
func (s *achievementService) today() time.Time {
	y, m, d := s.now().In(s.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *achievementService) GetUserAchievements(ctx context.Context, userID uuid.UUID) ([]achievementDto.UserAchievementResponse, error) {
	catalog, err := s.repo.ListCatalog(ctx)
	if err != nil {
		return nil, err
	}
	unlocks, err := s.repo.ListUnlocks(ctx, userID)
	if err != nil {
		return nil, err
	}

	dates := make(map[string]time.Time, len(unlocks))
	for _, u := range unlocks {
		dates[u.AchievementID] = u.UnlockedDate
	}

	result := make([]achievementDto.UserAchievementResponse, 0, len(catalog))
	for _, a := range catalog {
		entry := achievementDto.UserAchievementResponse{Achievement: a}
		if date, ok := dates[a.ID]; ok {
			entry.Unlocked = true
			entry.UnlockedDate = &date
		}
		result = append(result, entry)
	}
	return result, nil
}
