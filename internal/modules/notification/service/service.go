package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"anoa.com/fitquest/internal/entity"
	notifRepo "anoa.com/fitquest/internal/modules/notification/repository"
	"anoa.com/fitquest/pkg/apperror"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type NotificationService interface {
	CreateNotification(ctx context.Context, notification *entity.Notification) error
	GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.Notification, error)
	MarkAsRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type notificationService struct {
	repo        notifRepo.NotificationRepository
	redisClient *redis.Client
	log         *zap.Logger
}

func NewNotificationService(repo notifRepo.NotificationRepository, redisClient *redis.Client, log *zap.Logger) NotificationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &notificationService{
		repo:        repo,
		redisClient: redisClient,
		log:         log,
	}
}

// Channel is the Redis pub/sub channel carrying a user's notifications.
func Channel(userID string) string {
	return fmt.Sprintf("user_notifications:%s", userID)
}

func (s *notificationService) CreateNotification(ctx context.Context, notification *entity.Notification) error {
	if err := s.repo.Create(ctx, notification); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	// Publishing is best effort; the row is the source of truth.
	if s.redisClient != nil {
		payload, err := json.Marshal(notification)
		if err != nil {
			s.log.Warn("encode notification failed",
				zap.String("user_id", notification.UserID.String()),
				zap.Error(err),
			)
			return nil
		}
		if err := s.redisClient.Publish(ctx, Channel(notification.UserID.String()), payload).Err(); err != nil {
			s.log.Warn("publish notification failed",
				zap.String("user_id", notification.UserID.String()),
				zap.Error(err),
			)
		}
	}

	return nil
}

func (s *notificationService) GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.Notification, error) {
	return s.repo.GetByUserID(ctx, userID, limit, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, id uuid.UUID) error {
	notification, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if notification.UserID != userID {
		return apperror.ErrForbidden
	}
	return s.repo.MarkAsRead(ctx, id)
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

// LevelUp builds the notification sent when a user's level rises.
func LevelUp(stats *entity.UserStats) *entity.Notification {
	tier := entity.TierFor(stats.Level)
	return &entity.Notification{
		UserID:     stats.UserID,
		Type:       entity.NotificationLevelUp,
		EntityType: "level",
		EntityID:   fmt.Sprintf("%d", tier.Level),
		Message:    fmt.Sprintf("🎉 Level up! You are now %s (level %d) with %d points.", tier.Name, tier.Level, stats.TotalPoints),
	}
}

// AchievementUnlocked builds the notification sent for a new unlock.
func AchievementUnlocked(userID uuid.UUID, achievement entity.Achievement) *entity.Notification {
	message := fmt.Sprintf("%s Achievement unlocked: %s", achievement.Icon, achievement.Name)
	if achievement.BonusPoints > 0 {
		message = fmt.Sprintf("%s (+%d points)", message, achievement.BonusPoints)
	}
	return &entity.Notification{
		UserID:     userID,
		Type:       entity.NotificationAchievementUnlocked,
		EntityType: "achievement",
		EntityID:   achievement.ID,
		Message:    strings.TrimSpace(message),
	}
}
