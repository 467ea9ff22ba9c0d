package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"anoa.com/fitquest/internal/entity"
	pointsRepo "anoa.com/fitquest/internal/modules/points/repository"
	rewardDto "anoa.com/fitquest/internal/modules/reward/dto"
	rewardRepo "anoa.com/fitquest/internal/modules/reward/repository"
	"anoa.com/fitquest/pkg/apperror"
	"anoa.com/fitquest/pkg/database"
	"anoa.com/fitquest/pkg/ratelimiter"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redeemAction = "redeem"

type RewardService interface {
	Redeem(ctx context.Context, userID, rewardID uuid.UUID) (*rewardDto.RedeemResponse, error)
	ListAvailableRewards(ctx context.Context) ([]entity.Reward, error)
	GetRedemptions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.RewardRedemption, error)
}

type rewardService struct {
	repo        rewardRepo.RewardRepository
	pointsRepo  pointsRepo.PointsRepository
	tx          database.Transactor
	redisClient *redis.Client
	cooldown    time.Duration
	log         *zap.Logger
}

func NewRewardService(
	repo rewardRepo.RewardRepository,
	pointsRepo pointsRepo.PointsRepository,
	tx database.Transactor,
	redisClient *redis.Client,
	cooldown time.Duration,
	log *zap.Logger,
) RewardService {
	if log == nil {
		log = zap.NewNop()
	}
	return &rewardService{
		repo:        repo,
		pointsRepo:  pointsRepo,
		tx:          tx,
		redisClient: redisClient,
		cooldown:    cooldown,
		log:         log,
	}
}

// Redeem debits the reward cost and records a pending redemption. Either
// both happen or neither does. Lookup and balance errors take precedence
// over the per-user cooldown, which is only claimed for a redemption the
// balance covers.
func (s *rewardService) Redeem(ctx context.Context, userID, rewardID uuid.UUID) (*rewardDto.RedeemResponse, error) {
	var (
		resp    *rewardDto.RedeemResponse
		claimed bool
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		reward, err := s.repo.FindByID(ctx, rewardID)
		if err != nil {
			return err
		}
		if !reward.IsActive {
			return apperror.ErrRewardInactive
		}

		stats, err := s.pointsRepo.FindStatsForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if stats.TotalPoints < reward.PointsCost {
			return fmt.Errorf("%w: need %d, have %d", apperror.ErrInsufficientPoints, reward.PointsCost, stats.TotalPoints)
		}

		if claimed, err = s.claimCooldown(ctx, userID); err != nil {
			return err
		}

		stats.Debit(reward.PointsCost)
		if err := s.pointsRepo.SaveStats(ctx, stats); err != nil {
			return err
		}

		redemption := &entity.RewardRedemption{
			UserID:      userID,
			RewardID:    reward.ID,
			RewardName:  reward.Name,
			PointsSpent: reward.PointsCost,
			Status:      entity.RedemptionPending,
			RedeemedAt:  time.Now().UTC(),
		}
		if err := s.repo.CreateRedemption(ctx, redemption); err != nil {
			return err
		}

		resp = &rewardDto.RedeemResponse{
			RedemptionID:    redemption.ID,
			RewardName:      reward.Name,
			PointsSpent:     reward.PointsCost,
			RemainingPoints: stats.TotalPoints,
			Status:          redemption.Status,
		}
		return nil
	})
	if err != nil {
		if claimed {
			s.releaseCooldown(ctx, userID)
		}
		return nil, err
	}

	s.log.Info("reward redeemed",
		zap.String("user_id", userID.String()),
		zap.String("reward_id", rewardID.String()),
		zap.Int("points_spent", resp.PointsSpent),
		zap.Int("remaining", resp.RemainingPoints),
	)
	return resp, nil
}

// claimCooldown takes the per-user redeem window and reports whether a key
// was written. A Redis failure does not block the redemption.
func (s *rewardService) claimCooldown(ctx context.Context, userID uuid.UUID) (bool, error) {
	if s.redisClient == nil || s.cooldown <= 0 {
		return false, nil
	}
	allowed, err := ratelimiter.CheckAndSet(ctx, s.redisClient, userID, redeemAction, s.cooldown)
	if err != nil {
		s.log.Warn("redeem cooldown check failed", zap.Error(err))
		return false, nil
	}
	if allowed {
		return true, nil
	}
	ttl, _ := ratelimiter.TTL(ctx, s.redisClient, userID, redeemAction)
	return false, apperror.New(http.StatusTooManyRequests,
		fmt.Sprintf("please wait %v before redeeming again", ttl.Round(time.Second)),
		apperror.ErrRateLimitExceeded)
}

// releaseCooldown frees a window claimed by a redemption that rolled back.
func (s *rewardService) releaseCooldown(ctx context.Context, userID uuid.UUID) {
	if err := ratelimiter.Clear(ctx, s.redisClient, userID, redeemAction); err != nil {
		s.log.Warn("redeem cooldown clear failed", zap.Error(err))
	}
}

func (s *rewardService) ListAvailableRewards(ctx context.Context) ([]entity.Reward, error) {
	return s.repo.ListActive(ctx)
}

func (s *rewardService) GetRedemptions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.RewardRedemption, error) {
	return s.repo.ListRedemptions(ctx, userID, limit, offset)
}
