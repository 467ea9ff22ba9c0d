package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"anoa.com/fitquest/internal/bootstrap"
	"anoa.com/fitquest/internal/config"
	"anoa.com/fitquest/internal/server"
	"anoa.com/fitquest/pkg/database"
	"anoa.com/fitquest/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(logger.Options{
		Level:      cfg.LogLevel,
		Path:       cfg.LogPath,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
		Compress:   true,
	})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync()
	zap.ReplaceGlobals(zl)

	db, err := database.Connect(cfg.DBDriver, cfg.DSN())
	if err != nil {
		zl.Fatal("database", zap.Error(err))
	}
	if err := bootstrap.Migrate(db); err != nil {
		zl.Fatal("migration failed", zap.Error(err))
	}
	if err := bootstrap.SeedAchievements(db); err != nil {
		zl.Fatal("failed to seed achievements", zap.Error(err))
	}
	if err := bootstrap.SeedRewards(db); err != nil {
		zl.Fatal("failed to seed rewards", zap.Error(err))
	}
	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedAdminUser(db); err != nil {
			zl.Fatal("failed to seed admin user", zap.Error(err))
		}
	}

	redisClient := server.OpenRedis(cfg, zl)
	if redisClient != nil {
		defer redisClient.Close()
	}

	services := server.NewServices(cfg, db, redisClient, server.OpenMeili(cfg), zl)

	srv, err := server.NewServer(cfg, redisClient, services, zl)
	if err != nil {
		zl.Fatal("server setup", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		zl.Fatal("server exited with error", zap.Error(err))
	}
	zl.Info("server exited")
}
