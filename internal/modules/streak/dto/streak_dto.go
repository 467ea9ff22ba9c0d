package dto

import (
	"time"

	"anoa.com/fitquest/internal/entity"
	"github.com/google/uuid"
)

type RecordActivityRequest struct {
	UserID     uuid.UUID `json:"user_id" validate:"required"`
	Category   string    `json:"category" validate:"required,oneof=workout diet mental_health"`
	OccurredAt time.Time `json:"occurred_at"`
}

// StreakResult reports what a qualifying activity did to the category streak.
type StreakResult struct {
	Category     string               `json:"category"`
	Streak       int                  `json:"streak"`
	ActivityDate time.Time            `json:"activity_date"`
	Updated      bool                 `json:"updated"`
	Unlocked     []entity.Achievement `json:"unlocked"`
}
