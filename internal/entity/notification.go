package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationAchievementUnlocked = "achievement_unlocked"
	NotificationLevelUp             = "level_up"
)

type Notification struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;index:idx_notifications_user;not null" json:"user_id"` // recipient
	Type       string    `gorm:"size:50;not null" json:"type"`                                   // 'achievement_unlocked', 'level_up'
	EntityType string    `gorm:"size:50" json:"entity_type"`                                     // 'achievement', 'level'
	EntityID   string    `gorm:"size:64" json:"entity_id"`
	Message    string    `gorm:"type:text" json:"message"`
	IsRead     bool      `gorm:"not null" json:"is_read"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
