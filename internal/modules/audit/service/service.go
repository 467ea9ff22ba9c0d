package service

import (
	"context"

	auditDto "anoa.com/fitquest/internal/modules/audit/dto"
	pointsRepo "anoa.com/fitquest/internal/modules/points/repository"
	rewardRepo "anoa.com/fitquest/internal/modules/reward/repository"
	"anoa.com/fitquest/pkg/database"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuditService interface {
	AuditUser(ctx context.Context, userID uuid.UUID) (*auditDto.AuditReport, error)
	AuditAll(ctx context.Context) (*auditDto.AuditSummary, error)
}

type auditService struct {
	pointsRepo pointsRepo.PointsRepository
	rewardRepo rewardRepo.RewardRepository
	tx         database.Transactor
	log        *zap.Logger
}

func NewAuditService(pointsRepo pointsRepo.PointsRepository, rewardRepo rewardRepo.RewardRepository, tx database.Transactor, log *zap.Logger) AuditService {
	if log == nil {
		log = zap.NewNop()
	}
	return &auditService{
		pointsRepo: pointsRepo,
		rewardRepo: rewardRepo,
		tx:         tx,
		log:        log,
	}
}

// AuditUser returns ErrUserPointsNotFound when the user has no aggregate.
// The aggregate row stays locked while both ledgers are summed, so awards and
// redemptions for the user wait until the report is taken.
func (s *auditService) AuditUser(ctx context.Context, userID uuid.UUID) (*auditDto.AuditReport, error) {
	var report *auditDto.AuditReport
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		stats, err := s.pointsRepo.FindStatsForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		earned, err := s.pointsRepo.SumPoints(ctx, userID)
		if err != nil {
			return err
		}
		spent, err := s.rewardRepo.SumRedeemed(ctx, userID)
		if err != nil {
			return err
		}

		report = &auditDto.AuditReport{
			UserID:      userID,
			LedgerSum:   earned,
			RedeemedSum: spent,
			TotalPoints: stats.TotalPoints,
			Consistent:  earned-spent == stats.TotalPoints,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (s *auditService) AuditAll(ctx context.Context) (*auditDto.AuditSummary, error) {
	ids, err := s.pointsRepo.ListStatsUserIDs(ctx)
	if err != nil {
		return nil, err
	}

	summary := &auditDto.AuditSummary{Inconsistent: []auditDto.AuditReport{}}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report, err := s.AuditUser(ctx, id)
		if err != nil {
			return nil, err
		}
		summary.Checked++
		if !report.Consistent {
			s.log.Warn("ledger drift",
				zap.String("user_id", id.String()),
				zap.Int("ledger_sum", report.LedgerSum),
				zap.Int("redeemed_sum", report.RedeemedSum),
				zap.Int("total_points", report.TotalPoints),
				zap.Int("drift", report.Drift()),
			)
			summary.Inconsistent = append(summary.Inconsistent, *report)
		}
	}
	return summary, nil
}
