package dto

import (
	"time"

	"anoa.com/fitquest/internal/entity"
)

// UserAchievementResponse is a catalog entry with the caller's unlock status.
type UserAchievementResponse struct {
	entity.Achievement
	Unlocked     bool       `json:"unlocked"`
	UnlockedDate *time.Time `json:"unlocked_date,omitempty"`
}

type EvaluateResponse struct {
	Unlocked []entity.Achievement `json:"unlocked"`
}
