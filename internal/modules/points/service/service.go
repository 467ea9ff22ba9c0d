package service

import (
	"context"
	"errors"
	"html"
	"strings"

	"anoa.com/fitquest/internal/entity"
	notifService "anoa.com/fitquest/internal/modules/notification/service"
	pointsDto "anoa.com/fitquest/internal/modules/points/dto"
	pointsRepo "anoa.com/fitquest/internal/modules/points/repository"
	"anoa.com/fitquest/pkg/apperror"
	"anoa.com/fitquest/pkg/database"
	"anoa.com/fitquest/pkg/validator"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

type PointsService interface {
	AwardPoints(ctx context.Context, req pointsDto.AwardPointsRequest) (*pointsDto.AwardResult, error)
	GetUserPoints(ctx context.Context, userID uuid.UUID) (*entity.UserStats, error)
	GetHistory(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.PointLog, error)
}

type pointsService struct {
	repo                pointsRepo.PointsRepository
	tx                  database.Transactor
	notificationService notifService.NotificationService
	sanitizer           *bluemonday.Policy
	log                 *zap.Logger
}

func NewPointsService(repo pointsRepo.PointsRepository, tx database.Transactor, notificationService notifService.NotificationService, log *zap.Logger) PointsService {
	if log == nil {
		log = zap.NewNop()
	}
	return &pointsService{
		repo:                repo,
		tx:                  tx,
		notificationService: notificationService,
		sanitizer:           bluemonday.StrictPolicy(),
		log:                 log,
	}
}

// AwardPoints appends a ledger entry and credits the aggregate in one
// transaction, creating the aggregate on first award.
func (s *pointsService) AwardPoints(ctx context.Context, req pointsDto.AwardPointsRequest) (*pointsDto.AwardResult, error) {
	req.Activity = strings.TrimSpace(req.Activity)
	if err := validator.Struct(req); err != nil {
		return nil, err
	}

	var result *pointsDto.AwardResult
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.EnsureStats(ctx, req.UserID); err != nil {
			return err
		}
		stats, err := s.repo.FindStatsForUpdate(ctx, req.UserID)
		if err != nil {
			return err
		}

		entry := &entity.PointLog{
			UserID:      req.UserID,
			Points:      req.Amount,
			Activity:    req.Activity,
			Description: html.UnescapeString(s.sanitizer.Sanitize(req.Description)),
			ReferenceID: req.ReferenceID,
		}
		if err := s.repo.CreatePointLog(ctx, entry); err != nil {
			return err
		}

		previousLevel := stats.Level
		stats.AddPoints(req.Amount)
		if err := s.repo.SaveStats(ctx, stats); err != nil {
			return err
		}

		result = &pointsDto.AwardResult{Entry: entry, Stats: stats, PreviousLevel: previousLevel}
		if result.LeveledUp() {
			return s.notifyLevelUp(ctx, stats)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("points awarded",
		zap.String("user_id", req.UserID.String()),
		zap.String("activity", req.Activity),
		zap.Int("points", req.Amount),
		zap.Int("total", result.Stats.TotalPoints),
	)
	return result, nil
}

func (s *pointsService) notifyLevelUp(ctx context.Context, stats *entity.UserStats) error {
	if s.notificationService == nil {
		return nil
	}
	return s.notificationService.CreateNotification(ctx, notifService.LevelUp(stats))
}

// GetUserPoints returns nil, nil when the user has no aggregate yet.
func (s *pointsService) GetUserPoints(ctx context.Context, userID uuid.UUID) (*entity.UserStats, error) {
	stats, err := s.repo.FindStats(ctx, userID)
	if errors.Is(err, apperror.ErrUserPointsNotFound) {
		return nil, nil
	}
	return stats, err
}

func (s *pointsService) GetHistory(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.PointLog, error) {
	return s.repo.GetHistory(ctx, userID, limit, offset)
}
