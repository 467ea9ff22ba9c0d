package server

import (
	"context"
	"strings"
	"time"

	"anoa.com/fitquest/internal/config"
	"anoa.com/fitquest/pkg/cache"
	"anoa.com/fitquest/pkg/database"

	achievementRepo "anoa.com/fitquest/internal/modules/achievement/repository"
	achievementService "anoa.com/fitquest/internal/modules/achievement/service"
	activityService "anoa.com/fitquest/internal/modules/activity/service"
	adminService "anoa.com/fitquest/internal/modules/admin/service"
	auditService "anoa.com/fitquest/internal/modules/audit/service"
	leaderboardRepo "anoa.com/fitquest/internal/modules/leaderboard/repository"
	leaderboardService "anoa.com/fitquest/internal/modules/leaderboard/service"
	notifRepo "anoa.com/fitquest/internal/modules/notification/repository"
	notifService "anoa.com/fitquest/internal/modules/notification/service"
	pointsRepo "anoa.com/fitquest/internal/modules/points/repository"
	pointsService "anoa.com/fitquest/internal/modules/points/service"
	profileService "anoa.com/fitquest/internal/modules/profile/service"
	rewardRepo "anoa.com/fitquest/internal/modules/reward/repository"
	rewardService "anoa.com/fitquest/internal/modules/reward/service"
	searchService "anoa.com/fitquest/internal/modules/search/service"
	statRepo "anoa.com/fitquest/internal/modules/stat/repository"
	statService "anoa.com/fitquest/internal/modules/stat/service"
	streakRepo "anoa.com/fitquest/internal/modules/streak/repository"
	streakService "anoa.com/fitquest/internal/modules/streak/service"
	userRepo "anoa.com/fitquest/internal/modules/user/repository"

	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Services is the wired service graph shared by the HTTP server and the CLI.
type Services struct {
	UserRepo userRepo.UserRepository

	Notification notifService.NotificationService
	Points       pointsService.PointsService
	Achievement  achievementService.AchievementService
	Streak       streakService.StreakService
	Activity     activityService.ActivityService
	Reward       rewardService.RewardService
	Leaderboard  leaderboardService.LeaderboardService
	Profile      profileService.ProfileService
	Stat         statService.StatService
	Admin        adminService.AdminService
	Search       searchService.SearchService
	Audit        auditService.AuditService
}

// NewServices wires every module. redisClient and meili may be nil.
func NewServices(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, meili meilisearch.ServiceManager, log *zap.Logger) *Services {
	tx := database.NewTransactor(db)

	users := userRepo.NewUserRepository(db)
	points := pointsRepo.NewPointsRepository(db)
	redisCache := cache.New(redisClient, log.Named("cache"))
	achievements := achievementRepo.NewAchievementRepository(db)
	rewards := rewardRepo.NewRewardRepository(db)

	notificationSvc := notifService.NewNotificationService(notifRepo.NewNotificationRepository(db), redisClient, log.Named("notification"))
	pointsSvc := pointsService.NewPointsService(points, tx, notificationSvc, log.Named("points"))
	achievementSvc := achievementService.NewAchievementService(achievements, points, tx, notificationSvc, cfg.Location, log.Named("achievement"))
	streakSvc := streakService.NewStreakService(streakRepo.NewActivityRepository(db), points, achievementSvc, tx, cfg.Location, cfg.StreakSameDayPolicy, log.Named("streak"))

	return &Services{
		UserRepo:     users,
		Notification: notificationSvc,
		Points:       pointsSvc,
		Achievement:  achievementSvc,
		Streak:       streakSvc,
		Activity:     activityService.NewActivityService(pointsSvc, streakSvc, tx),
		Reward:       rewardService.NewRewardService(rewards, points, tx, redisClient, cfg.RateLimitRedeem, log.Named("reward")),
		Leaderboard: leaderboardService.NewLeaderboardService(
			leaderboardRepo.NewLeaderboardRepository(db),
			users,
			redisCache,
			cfg.LeaderboardCacheTTL,
		),
		Profile: profileService.NewProfileService(users, points, achievementSvc),
		Stat:    statService.NewStatService(statRepo.NewStatRepository(db), redisCache, cfg.LeaderboardCacheTTL, cfg.Location),
		Admin:   adminService.NewAdminService(users, log.Named("admin")),
		Search:  searchService.NewSearchService(meili, achievements, rewards, log.Named("search")),
		Audit:   auditService.NewAuditService(points, rewards, tx, log.Named("audit")),
	}
}

// OpenRedis returns nil when REDIS_URL is unset or the server is unreachable.
func OpenRedis(cfg *config.Config, log *zap.Logger) *redis.Client {
	if cfg.RedisURL == "" {
		log.Info("redis not configured, caching and pub/sub disabled")
		return nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Warn("invalid REDIS_URL, redis disabled", zap.Error(err))
		return nil
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, redis disabled", zap.Error(err))
		client.Close()
		return nil
	}
	return client
}

// OpenMeili returns a nil interface when MEILISEARCH_HOST is unset.
func OpenMeili(cfg *config.Config) meilisearch.ServiceManager {
	host := cfg.MeiliSearchHost
	if host == "" {
		return nil
	}
	if !strings.HasPrefix(host, "http") {
		host = "http://" + host + ":7700"
	}
	return meilisearch.New(host, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
}
