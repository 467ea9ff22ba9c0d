package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"anoa.com/fitquest/internal/entity"
	auditService "anoa.com/fitquest/internal/modules/audit/service"
	pointsDto "anoa.com/fitquest/internal/modules/points/dto"
	pointsRepo "anoa.com/fitquest/internal/modules/points/repository"
	pointsService "anoa.com/fitquest/internal/modules/points/service"
	rewardRepo "anoa.com/fitquest/internal/modules/reward/repository"
	rewardService "anoa.com/fitquest/internal/modules/reward/service"
	"anoa.com/fitquest/internal/testutil"
	"anoa.com/fitquest/pkg/apperror"
	"anoa.com/fitquest/pkg/database"
	"github.com/google/uuid"
)

func TestAuditAfterAwardAndRedeem(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	tx := database.NewTransactor(db)
	points := pointsRepo.NewPointsRepository(db)
	rewards := rewardRepo.NewRewardRepository(db)
	audit := auditService.NewAuditService(points, rewards, tx, nil)

	user := testutil.CreateUser(t, db, "audited")
	award := pointsService.NewPointsService(points, tx, nil, nil)
	if _, err := award.AwardPoints(ctx, pointsDto.AwardPointsRequest{UserID: user.ID, Amount: 400, Activity: "workout_logged"}); err != nil {
		t.Fatalf("AwardPoints: %v", err)
	}
	reward := testutil.CreateReward(t, db, "Free smoothie", 300, true)
	if _, err := rewardService.NewRewardService(rewards, points, tx, nil, 0, nil).Redeem(ctx, user.ID, reward.ID); err != nil {
		t.Fatalf("Redeem: %v", err)
	}

	report, err := audit.AuditUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("AuditUser: %v", err)
	}
	if !report.Consistent || report.LedgerSum != 400 || report.RedeemedSum != 300 || report.TotalPoints != 100 {
		t.Errorf("report = %+v, want consistent 400-300=100", report)
	}
}

func TestAuditAllFindsDrift(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	audit := auditService.NewAuditService(pointsRepo.NewPointsRepository(db), rewardRepo.NewRewardRepository(db), database.NewTransactor(db), nil)

	good := testutil.CreateUser(t, db, "good")
	testutil.CreateStats(t, db, &entity.UserStats{UserID: good.ID, TotalPoints: 10})
	db.Create(&entity.PointLog{UserID: good.ID, Points: 10, Activity: "diet_logged"})

	drifted := testutil.CreateUser(t, db, "drifted")
	testutil.CreateStats(t, db, &entity.UserStats{UserID: drifted.ID, TotalPoints: 999})

	summary, err := audit.AuditAll(ctx)
	if err != nil {
		t.Fatalf("AuditAll: %v", err)
	}
	if summary.Checked != 2 {
		t.Errorf("checked = %d, want 2", summary.Checked)
	}
	if len(summary.Inconsistent) != 1 || summary.Inconsistent[0].UserID != drifted.ID {
		t.Fatalf("inconsistent = %+v, want only the drifted user", summary.Inconsistent)
	}
	if drift := summary.Inconsistent[0].Drift(); drift != 999 {
		t.Errorf("drift = %d, want 999", drift)
	}
}

func TestAuditUserWithoutAggregate(t *testing.T) {
	db := testutil.NewDB(t)
	audit := auditService.NewAuditService(pointsRepo.NewPointsRepository(db), rewardRepo.NewRewardRepository(db), database.NewTransactor(db), nil)

	_, err := audit.AuditUser(context.Background(), uuid.New())
	if !errors.Is(err, apperror.ErrUserPointsNotFound) {
		t.Errorf("err = %v, want ErrUserPointsNotFound", err)
	}
}

func TestAuditUserDuringConcurrentAwards(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	tx := database.NewTransactor(db)
	points := pointsRepo.NewPointsRepository(db)
	audit := auditService.NewAuditService(points, rewardRepo.NewRewardRepository(db), tx, nil)
	award := pointsService.NewPointsService(points, tx, nil, nil)

	user := testutil.CreateUser(t, db, "busy")
	if _, err := award.AwardPoints(ctx, pointsDto.AwardPointsRequest{UserID: user.ID, Amount: 10, Activity: "workout_logged"}); err != nil {
		t.Fatalf("AwardPoints: %v", err)
	}

	const rounds = 20
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		drifted int
		errs    []error
	)
	for i := 0; i < rounds; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := award.AwardPoints(ctx, pointsDto.AwardPointsRequest{UserID: user.ID, Amount: 5, Activity: "diet_logged"})
			if err != nil {
				t.Errorf("AwardPoints: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			report, err := audit.AuditUser(ctx, user.ID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
			} else if !report.Consistent {
				drifted++
			}
		}()
	}
	wg.Wait()

	if len(errs) != 0 {
		t.Fatalf("AuditUser errors: %v", errs)
	}
	if drifted != 0 {
		t.Errorf("%d audits reported drift while awards were committing", drifted)
	}
	if stats := testutil.ReloadStats(t, db, user.ID); stats.TotalPoints != 10+5*rounds {
		t.Errorf("total = %d, want %d", stats.TotalPoints, 10+5*rounds)
	}
}
