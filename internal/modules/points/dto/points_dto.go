package dto

import (
	"time"

	"anoa.com/fitquest/internal/entity"
	commonDto "anoa.com/fitquest/pkg/dto"
	"github.com/google/uuid"
)

// AwardPointsRequest is both the admin HTTP body and the service input.
type AwardPointsRequest struct {
	UserID      uuid.UUID `json:"user_id" validate:"required"`
	Amount      int       `json:"amount" validate:"gt=0"`
	Activity    string    `json:"activity" validate:"required,max=50"`
	Description string    `json:"description" validate:"max=500"`
	ReferenceID string    `json:"reference_id,omitempty" validate:"max=64"`
}

type AwardResult struct {
	Entry         *entity.PointLog  `json:"entry"`
	Stats         *entity.UserStats `json:"stats"`
	PreviousLevel int               `json:"previous_level"`
}

func (r *AwardResult) LeveledUp() bool {
	return r.Stats.Level > r.PreviousLevel
}

type UserPointsResponse struct {
	UserID             uuid.UUID                    `json:"user_id"`
	TotalPoints        int                          `json:"total_points"`
	WeeklyPoints       int                          `json:"weekly_points"`
	MonthlyPoints      int                          `json:"monthly_points"`
	Level              int                          `json:"level"`
	WorkoutStreak      int                          `json:"workout_streak"`
	DietStreak         int                          `json:"diet_streak"`
	MentalHealthStreak int                          `json:"mental_health_streak"`
	LastWorkoutDate    *time.Time                   `json:"last_workout_date,omitempty"`
	LastDietDate       *time.Time                   `json:"last_diet_date,omitempty"`
	LastMentalDate     *time.Time                   `json:"last_mental_health_date,omitempty"`
	Status             commonDto.GamificationStatus `json:"gamification_status"`
}

type HistoryResponse struct {
	Data []entity.PointLog        `json:"data"`
	Meta commonDto.PaginationMeta `json:"meta"`
}
