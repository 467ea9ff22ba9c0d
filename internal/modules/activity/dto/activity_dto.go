package dto

import (
	"time"

	"anoa.com/fitquest/internal/entity"
	pointsDto "anoa.com/fitquest/internal/modules/points/dto"
	streakDto "anoa.com/fitquest/internal/modules/streak/dto"
)

type LogActivityRequest struct {
	Category    string    `json:"category" binding:"required"`
	OccurredAt  time.Time `json:"occurred_at"`
	Points      int       `json:"points"` // zero uses the category default
	Description string    `json:"description"`
	ReferenceID string    `json:"reference_id"`
}

type LogActivityResponse struct {
	Award    *pointsDto.AwardResult  `json:"award"`
	Streak   *streakDto.StreakResult `json:"streak"`
	Unlocked []entity.Achievement    `json:"unlocked"`
}
