package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"anoa.com/fitquest/internal/entity"
	leaderboardRepo "anoa.com/fitquest/internal/modules/leaderboard/repository"
	leaderboardService "anoa.com/fitquest/internal/modules/leaderboard/service"
	userRepo "anoa.com/fitquest/internal/modules/user/repository"
	"anoa.com/fitquest/internal/testutil"
	"anoa.com/fitquest/pkg/apperror"
	"anoa.com/fitquest/pkg/cache"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func newService(db *gorm.DB) leaderboardService.LeaderboardService {
	return leaderboardService.NewLeaderboardService(leaderboardRepo.NewLeaderboardRepository(db), userRepo.NewUserRepository(db), nil, 0)
}

func TestLeaderboardAllTimeOrder(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newService(db)

	for _, total := range []int{300, 100, 200} {
		user := testutil.CreateUser(t, db, "user-"+uuid.NewString()[:8])
		testutil.CreateStats(t, db, &entity.UserStats{UserID: user.ID, TotalPoints: total})
	}

	for _, timeframe := range []string{"", "all_time", "allTime"} {
		resp, err := svc.GetLeaderboard(context.Background(), timeframe, 10)
		if err != nil {
			t.Fatalf("GetLeaderboard(%q): %v", timeframe, err)
		}
		if resp.Timeframe != leaderboardService.TimeframeAllTime {
			t.Errorf("timeframe = %q, want all_time", resp.Timeframe)
		}

		want := []int{300, 200, 100}
		if len(resp.Entries) != len(want) {
			t.Fatalf("entries = %d, want %d", len(resp.Entries), len(want))
		}
		for i, entry := range resp.Entries {
			if entry.Points != want[i] || entry.Position != i+1 {
				t.Errorf("entry %d = points %d position %d, want %d/%d", i, entry.Points, entry.Position, want[i], i+1)
			}
		}
	}
}

func TestLeaderboardWeeklyUsesRollupAndTieBreak(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newService(db)

	a := uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	b := uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	c := uuid.MustParse("00000000-0000-0000-0000-00000000000c")
	testutil.CreateStats(t, db, &entity.UserStats{UserID: b, TotalPoints: 9000, WeeklyPoints: 40})
	testutil.CreateStats(t, db, &entity.UserStats{UserID: a, TotalPoints: 10, WeeklyPoints: 40})
	testutil.CreateStats(t, db, &entity.UserStats{UserID: c, TotalPoints: 500, WeeklyPoints: 90})

	resp, err := svc.GetLeaderboard(context.Background(), "weekly", 2)
	if err != nil {
		t.Fatalf("GetLeaderboard: %v", err)
	}
	if len(resp.Entries) != 2 {
		t.Fatalf("entries = %d, want 2 (limit)", len(resp.Entries))
	}
	if resp.Entries[0].UserID != c || resp.Entries[1].UserID != a {
		t.Errorf("order = [%s %s], want [c a]", resp.Entries[0].UserID, resp.Entries[1].UserID)
	}
	// no users rows exist, so the short id label is used
	if resp.Entries[1].DisplayName != "Athlete 00000000" {
		t.Errorf("display name = %q", resp.Entries[1].DisplayName)
	}
}

func TestLeaderboardDisplayNames(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newService(db)

	named := "Coach Rita"
	withName := &entity.User{Username: "rita", DisplayName: &named}
	if err := db.Create(withName).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	plain := testutil.CreateUser(t, db, "plainuser")
	testutil.CreateStats(t, db, &entity.UserStats{UserID: withName.ID, TotalPoints: 20})
	testutil.CreateStats(t, db, &entity.UserStats{UserID: plain.ID, TotalPoints: 10})

	resp, err := svc.GetLeaderboard(context.Background(), "all_time", 10)
	if err != nil {
		t.Fatalf("GetLeaderboard: %v", err)
	}
	if resp.Entries[0].DisplayName != "Coach Rita" || resp.Entries[1].DisplayName != "plainuser" {
		t.Errorf("names = %q, %q", resp.Entries[0].DisplayName, resp.Entries[1].DisplayName)
	}
}

func TestLeaderboardRejectsUnknownTimeframe(t *testing.T) {
	db := testutil.NewDB(t)
	_, err := newService(db).GetLeaderboard(context.Background(), "daily", 10)
	if !errors.Is(err, apperror.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestLeaderboardCacheHitAndInvalidate(t *testing.T) {
	db := testutil.NewDB(t)
	rdb, mr := testutil.NewRedis(t)
	svc := leaderboardService.NewLeaderboardService(
		leaderboardRepo.NewLeaderboardRepository(db),
		userRepo.NewUserRepository(db),
		cache.New(rdb, nil),
		30*time.Second,
	)
	ctx := context.Background()

	leader := testutil.CreateUser(t, db, "leader")
	testutil.CreateStats(t, db, &entity.UserStats{UserID: leader.ID, TotalPoints: 100})

	first, err := svc.GetLeaderboard(ctx, "all_time", 10)
	if err != nil {
		t.Fatalf("GetLeaderboard: %v", err)
	}
	if len(first.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(first.Entries))
	}
	if !mr.Exists("leaderboard:all_time:10") {
		t.Fatalf("keys = %v, want the board cached", mr.Keys())
	}

	challenger := testutil.CreateUser(t, db, "challenger")
	testutil.CreateStats(t, db, &entity.UserStats{UserID: challenger.ID, TotalPoints: 500})

	cached, err := svc.GetLeaderboard(ctx, "allTime", 10)
	if err != nil {
		t.Fatalf("GetLeaderboard: %v", err)
	}
	if len(cached.Entries) != 1 || cached.Entries[0].DisplayName != "leader" {
		t.Errorf("entries = %+v, want the cached board", cached.Entries)
	}

	svc.InvalidateCache(ctx)
	fresh, err := svc.GetLeaderboard(ctx, "all_time", 10)
	if err != nil {
		t.Fatalf("GetLeaderboard: %v", err)
	}
	if len(fresh.Entries) != 2 || fresh.Entries[0].DisplayName != "challenger" {
		t.Errorf("entries = %+v, want challenger first after invalidation", fresh.Entries)
	}
}
