package cli

import (
	"context"
	"fmt"

	"anoa.com/fitquest/internal/bootstrap"
	"anoa.com/fitquest/internal/entity"
	adminDto "anoa.com/fitquest/internal/modules/admin/dto"
	pointsDto "anoa.com/fitquest/internal/modules/points/dto"
	"github.com/google/uuid"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *Context) error {
	if err := bootstrap.Migrate(ctx.DB); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	fmt.Fprintln(ctx.Out, "✓ schema migrated")
	return nil
}

type SeedCmd struct {
	Admin bool `help:"Also create the admin user."`
}

func (c *SeedCmd) Run(ctx *Context) error {
	if err := bootstrap.SeedAchievements(ctx.DB); err != nil {
		return err
	}
	if err := bootstrap.SeedRewards(ctx.DB); err != nil {
		return err
	}
	if c.Admin {
		if err := bootstrap.SeedAdminUser(ctx.DB); err != nil {
			return err
		}
	}

	if err := ctx.Services.Search.SyncCatalog(context.Background()); err != nil {
		fmt.Fprintf(ctx.Out, "catalog not indexed: %v\n", err)
	}
	fmt.Fprintln(ctx.Out, "✓ catalog seeded")
	return nil
}

type AuditCmd struct {
	User string `help:"Audit a single user ID instead of everyone."`
}

func (c *AuditCmd) Run(ctx *Context) error {
	bg := context.Background()

	if c.User != "" {
		userID, err := uuid.Parse(c.User)
		if err != nil {
			return fmt.Errorf("invalid user id %q", c.User)
		}
		report, err := ctx.Services.Audit.AuditUser(bg, userID)
		if err != nil {
			return err
		}
		status := "consistent"
		if !report.Consistent {
			status = fmt.Sprintf("DRIFT %+d", report.Drift())
		}
		fmt.Fprintf(ctx.Out, "%s  ledger=%d redeemed=%d total=%d  %s\n",
			report.UserID, report.LedgerSum, report.RedeemedSum, report.TotalPoints, status)
		return nil
	}

	summary, err := ctx.Services.Audit.AuditAll(bg)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "checked %d users, %d inconsistent\n", summary.Checked, len(summary.Inconsistent))
	for _, r := range summary.Inconsistent {
		fmt.Fprintf(ctx.Out, "  %s  drift %+d\n", r.UserID, r.Drift())
	}
	return nil
}

type AwardCmd struct {
	User        string `required:"" help:"User ID to credit."`
	Points      int    `required:"" help:"Points to award."`
	Activity    string `required:"" help:"Activity label, e.g. workout_logged."`
	Description string `help:"Free-form description."`
}

func (c *AwardCmd) Run(ctx *Context) error {
	userID, err := uuid.Parse(c.User)
	if err != nil {
		return fmt.Errorf("invalid user id %q", c.User)
	}

	result, err := ctx.Services.Points.AwardPoints(context.Background(), pointsDto.AwardPointsRequest{
		UserID:      userID,
		Amount:      c.Points,
		Activity:    c.Activity,
		Description: c.Description,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Out, "✓ awarded %d points, total %d, level %d\n", c.Points, result.Stats.TotalPoints, result.Stats.Level)
	if result.LeveledUp() {
		fmt.Fprintf(ctx.Out, "  level up from %d\n", result.PreviousLevel)
	}
	return nil
}

type UserCreateCmd struct {
	Username string `arg:"" help:"Unique username."`
	ID       string `help:"Identity provider subject to use as the user ID."`
	Admin    bool   `help:"Grant the admin role."`
}

func (c *UserCreateCmd) Run(ctx *Context) error {
	input := adminDto.CreateUserInput{Username: c.Username}
	if c.ID != "" {
		id, err := uuid.Parse(c.ID)
		if err != nil {
			return fmt.Errorf("invalid user id %q", c.ID)
		}
		input.ID = id
	}
	if c.Admin {
		input.Role = entity.RoleAdmin
	}

	user, err := ctx.Services.Admin.CreateUser(context.Background(), input)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "✓ created %s (%s) %s\n", user.Username, user.Role, user.ID)
	return nil
}
