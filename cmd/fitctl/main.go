package main

import (
	"fmt"
	"os"

	"anoa.com/fitquest/internal/cli"
	"anoa.com/fitquest/internal/config"
	"anoa.com/fitquest/internal/server"
	"anoa.com/fitquest/pkg/database"
	"anoa.com/fitquest/pkg/logger"
	"github.com/alecthomas/kong"
	"go.uber.org/zap"
)

var CLI struct {
	Verbose bool `short:"v" help:"Log at debug level."`

	Migrate cli.MigrateCmd `cmd:"" help:"Create or update the database schema."`
	Seed    cli.SeedCmd    `cmd:"" help:"Seed the achievement and reward catalogs."`
	Audit   cli.AuditCmd   `cmd:"" help:"Check balances against the points ledger."`
	Award   cli.AwardCmd   `cmd:"" help:"Award points to a user."`
	Users   struct {
		Create cli.UserCreateCmd `cmd:"" help:"Provision a user."`
	} `cmd:"" help:"Manage users."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("fitctl"),
		kong.Description("FitQuest gamification admin tool"),
		kong.UsageOnError(),
	)

	if err := run(kctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(kctx *kong.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := "warn"
	if CLI.Verbose {
		level = "debug"
	}
	zl, err := logger.New(logger.Options{Level: level})
	if err != nil {
		return err
	}
	defer zl.Sync()
	zap.ReplaceGlobals(zl)

	db, err := database.Connect(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return err
	}

	redisClient := server.OpenRedis(cfg, zl)
	if redisClient != nil {
		defer redisClient.Close()
	}

	return kctx.Run(&cli.Context{
		DB:       db,
		Services: server.NewServices(cfg, db, redisClient, server.OpenMeili(cfg), zl),
		Out:      os.Stdout,
	})
}
