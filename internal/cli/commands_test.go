package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"anoa.com/fitquest/internal/config"
	"anoa.com/fitquest/internal/entity"
	"anoa.com/fitquest/internal/server"
	"anoa.com/fitquest/internal/testutil"
	"go.uber.org/zap"
)

func newContext(t *testing.T) (*Context, *bytes.Buffer) {
	t.Helper()
	db := testutil.NewDB(t)
	cfg := &config.Config{Location: time.UTC, StreakSameDayPolicy: config.SameDayOncePerDay}
	out := &bytes.Buffer{}
	return &Context{
		DB:       db,
		Services: server.NewServices(cfg, db, nil, nil, zap.NewNop()),
		Out:      out,
	}, out
}

func TestSeedIsIdempotent(t *testing.T) {
	ctx, out := newContext(t)
	cmd := &SeedCmd{Admin: true}

	for i := 0; i < 2; i++ {
		if err := cmd.Run(ctx); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}

	var achievements, rewards, users int64
	ctx.DB.Model(&entity.Achievement{}).Count(&achievements)
	ctx.DB.Model(&entity.Reward{}).Count(&rewards)
	ctx.DB.Model(&entity.User{}).Count(&users)

	if int(achievements) != 10 || int(rewards) != 4 || users != 1 {
		t.Errorf("got %d achievements, %d rewards, %d users", achievements, rewards, users)
	}
	if !strings.Contains(out.String(), "catalog not indexed") {
		t.Errorf("expected a search warning, got %q", out.String())
	}
}

func TestAwardThenAudit(t *testing.T) {
	ctx, out := newContext(t)
	user := testutil.CreateUser(t, ctx.DB, "lifter")

	award := &AwardCmd{User: user.ID.String(), Points: 150, Activity: "workout_logged"}
	if err := award.Run(ctx); err != nil {
		t.Fatalf("award: %v", err)
	}
	if !strings.Contains(out.String(), "total 150, level 2") {
		t.Errorf("award output = %q", out.String())
	}

	out.Reset()
	if err := (&AuditCmd{User: user.ID.String()}).Run(ctx); err != nil {
		t.Fatalf("audit user: %v", err)
	}
	if !strings.Contains(out.String(), "consistent") {
		t.Errorf("audit output = %q", out.String())
	}

	ctx.DB.Model(&entity.UserStats{}).Where("user_id = ?", user.ID).Update("total_points", 200)

	out.Reset()
	if err := (&AuditCmd{}).Run(ctx); err != nil {
		t.Fatalf("audit all: %v", err)
	}
	if !strings.Contains(out.String(), "1 inconsistent") || !strings.Contains(out.String(), "drift +50") {
		t.Errorf("audit all output = %q", out.String())
	}
}

func TestAwardRejectsBadUserID(t *testing.T) {
	ctx, _ := newContext(t)
	if err := (&AwardCmd{User: "nope", Points: 1, Activity: "x"}).Run(ctx); err == nil {
		t.Fatal("expected an error")
	}
}

func TestUserCreate(t *testing.T) {
	ctx, out := newContext(t)
	id := "6f1c2a1e-8a39-4f53-9d5e-2b8f1c0a7e11"

	if err := (&UserCreateCmd{Username: "coach", ID: id, Admin: true}).Run(ctx); err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.Contains(out.String(), "coach (admin) "+id) {
		t.Errorf("output = %q", out.String())
	}
	if err := (&UserCreateCmd{Username: "coach"}).Run(ctx); err == nil {
		t.Error("duplicate username should fail")
	}
}
