package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"anoa.com/fitquest/internal/agent"
	"anoa.com/fitquest/internal/config"
	"anoa.com/fitquest/internal/middleware"

	achievementHttp "anoa.com/fitquest/internal/modules/achievement/delivery/http"
	activityHttp "anoa.com/fitquest/internal/modules/activity/delivery/http"
	adminHttp "anoa.com/fitquest/internal/modules/admin/delivery/http"
	auditHttp "anoa.com/fitquest/internal/modules/audit/delivery/http"
	leaderboardHttp "anoa.com/fitquest/internal/modules/leaderboard/delivery/http"
	notiHttp "anoa.com/fitquest/internal/modules/notification/delivery/http"
	pointsHttp "anoa.com/fitquest/internal/modules/points/delivery/http"
	profileHttp "anoa.com/fitquest/internal/modules/profile/delivery/http"
	rewardHttp "anoa.com/fitquest/internal/modules/reward/delivery/http"
	searchHttp "anoa.com/fitquest/internal/modules/search/delivery/http"
	searchService "anoa.com/fitquest/internal/modules/search/service"
	statHttp "anoa.com/fitquest/internal/modules/stat/delivery/http"
	streakHttp "anoa.com/fitquest/internal/modules/streak/delivery/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	engine    *gin.Engine
	http      *http.Server
	scheduler *agent.Scheduler
	services  *Services
	log       *zap.Logger
}

func NewServer(cfg *config.Config, redisClient *redis.Client, services *Services, log *zap.Logger) (*Server, error) {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	pointsHandler := pointsHttp.NewPointsHandler(services.Points)
	achievementHandler := achievementHttp.NewAchievementHandler(services.Achievement)
	streakHandler := streakHttp.NewStreakHandler(services.Streak)
	activityHandler := activityHttp.NewActivityHandler(services.Activity)
	rewardHandler := rewardHttp.NewRewardHandler(services.Reward)
	leaderboardHandler := leaderboardHttp.NewLeaderboardHandler(services.Leaderboard)
	notificationHandler := notiHttp.NewNotificationHandler(services.Notification, redisClient, parseOrigins(cfg.AllowedOrigins), log.Named("ws"))
	searchHandler := searchHttp.NewSearchHandler(services.Search)
	auditHandler := auditHttp.NewAuditHandler(services.Audit)
	profileHandler := profileHttp.NewProfileHandler(services.Profile)
	statHandler := statHttp.NewStatHandler(services.Stat)
	adminHandler := adminHttp.NewAdminHandler(services.Admin)

	ipLimiter := middleware.NewIPRateLimiter(cfg.RateLimitPerMinute)

	scheduler := agent.NewScheduler(log.Named("scheduler"))
	jobs := []agent.Agent{
		agent.NewAuditAgent(services.Audit, cfg.AuditSchedule, log.Named("audit")),
		agent.NewFuncAgent("catalog_sync", "@hourly", func(ctx context.Context) error {
			if err := services.Search.SyncCatalog(ctx); err != nil && !errors.Is(err, searchService.ErrUnavailable) {
				return err
			}
			return nil
		}),
		agent.NewFuncAgent("ratelimit_cleanup", "@every 5m", func(context.Context) error {
			ipLimiter.Cleanup(time.Now())
			return nil
		}),
	}
	for _, job := range jobs {
		if err := scheduler.RegisterAgent(job); err != nil {
			return nil, err
		}
	}

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz"},
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authMiddleware := middleware.NewAuthMiddleware(services.UserRepo, cfg.JWTSecret)
	invalidate := leaderboardHandler.InvalidateOnSuccess()

	api := router.Group("/api")
	api.Use(ipLimiter.Middleware())

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		// Admin routes
		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireAdmin())
		{
			adminGroup.POST("/points", invalidate, pointsHandler.AwardPoints)
			adminGroup.POST("/streaks", invalidate, streakHandler.RecordActivity)
			adminGroup.GET("/audit/:user_id", auditHandler.AuditUser)
			adminGroup.POST("/users", adminHandler.CreateUser)
			adminGroup.GET("/users", adminHandler.GetAllUsers)
			adminGroup.PUT("/users/:id/role", adminHandler.UpdateUserRole)
		}

		// Points
		protected.GET("/points/me", pointsHandler.GetMyPoints)
		protected.GET("/points/me/history", pointsHandler.GetMyHistory)
		protected.POST("/activities", invalidate, activityHandler.LogActivity)

		// Achievements
		protected.GET("/achievements/me", achievementHandler.GetMyAchievements)
		protected.POST("/achievements/me/evaluate", invalidate, achievementHandler.EvaluateMine)

		// Rewards
		protected.GET("/rewards", rewardHandler.ListRewards)
		protected.GET("/rewards/search", searchHandler.SearchCatalog)
		protected.GET("/rewards/redemptions", rewardHandler.GetMyRedemptions)
		protected.POST("/rewards/:id/redeem", invalidate, rewardHandler.Redeem)

		protected.GET("/leaderboard", leaderboardHandler.GetLeaderboard)
		protected.GET("/stats", statHandler.GetCommunityStats)

		// Profile routes
		protected.GET("/profile/me", profileHandler.GetCurrentProfile)
		protected.GET("/profile/:username", profileHandler.GetProfileByUsername)
		protected.PUT("/profile", invalidate, profileHandler.UpdateProfile)

		// Notification routes
		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.GET("/notifications/ws", notificationHandler.HandleWebSocket)
	}

	return &Server{
		engine: router,
		http: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		scheduler: scheduler,
		services:  services,
		log:       log,
	}, nil
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then drains requests and background jobs.
func (s *Server) Run(ctx context.Context) error {
	s.scheduler.Start()

	go func() {
		if err := s.scheduler.RunAgentByName(ctx, "catalog_sync"); err != nil {
			s.log.Warn("initial catalog sync failed", zap.Error(err))
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.scheduler.Stop(shutdownCtx)
	return s.http.Shutdown(shutdownCtx)
}

// parseOrigins splits ALLOWED_ORIGINS, falling back to the local frontend.
func parseOrigins(allowedOrigins string) []string {
	var origins []string
	for _, o := range strings.Split(allowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	return origins
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     parseOrigins(allowedOrigins),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
