package service

import (
	"context"
	"fmt"

	"anoa.com/fitquest/internal/entity"
	activityDto "anoa.com/fitquest/internal/modules/activity/dto"
	pointsDto "anoa.com/fitquest/internal/modules/points/dto"
	pointsService "anoa.com/fitquest/internal/modules/points/service"
	streakService "anoa.com/fitquest/internal/modules/streak/service"
	"anoa.com/fitquest/pkg/apperror"
	"anoa.com/fitquest/pkg/database"
	"github.com/google/uuid"
)

// Points granted when a request does not name an amount.
var DefaultPoints = map[string]int{
	entity.CategoryWorkout:      50,
	entity.CategoryDiet:         10,
	entity.CategoryMentalHealth: 15,
}

type ActivityService interface {
	LogActivity(ctx context.Context, userID uuid.UUID, req activityDto.LogActivityRequest) (*activityDto.LogActivityResponse, error)
}

type activityService struct {
	pointsService pointsService.PointsService
	streakService streakService.StreakService
	tx            database.Transactor
}

func NewActivityService(pointsService pointsService.PointsService, streakService streakService.StreakService, tx database.Transactor) ActivityService {
	return &activityService{
		pointsService: pointsService,
		streakService: streakService,
		tx:            tx,
	}
}

// LogActivity awards points, advances the streak and evaluates achievements
// as one unit. Nothing is written if any step fails.
func (s *activityService) LogActivity(ctx context.Context, userID uuid.UUID, req activityDto.LogActivityRequest) (*activityDto.LogActivityResponse, error) {
	defaultPoints, ok := DefaultPoints[req.Category]
	if !ok {
		return nil, fmt.Errorf("%w: unknown category %q", apperror.ErrInvalidInput, req.Category)
	}
	points := req.Points
	if points == 0 {
		points = defaultPoints
	}

	var resp activityDto.LogActivityResponse
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		award, err := s.pointsService.AwardPoints(ctx, pointsDto.AwardPointsRequest{
			UserID:      userID,
			Amount:      points,
			Activity:    req.Category + "_logged",
			Description: req.Description,
			ReferenceID: req.ReferenceID,
		})
		if err != nil {
			return err
		}

		streak, err := s.streakService.RecordDailyActivity(ctx, userID, req.Category, req.OccurredAt)
		if err != nil {
			return err
		}

		resp = activityDto.LogActivityResponse{Award: award, Streak: streak, Unlocked: streak.Unlocked}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if resp.Unlocked == nil {
		resp.Unlocked = []entity.Achievement{}
	}
	return &resp, nil
}
