package dto

import (
	"anoa.com/fitquest/internal/entity"
	commonDto "anoa.com/fitquest/pkg/dto"
	"github.com/google/uuid"
)

type RedeemResponse struct {
	RedemptionID    uuid.UUID `json:"redemption_id"`
	RewardName      string    `json:"reward_name"`
	PointsSpent     int       `json:"points_spent"`
	RemainingPoints int       `json:"remaining_points"`
	Status          string    `json:"status"`
}

type RedemptionListResponse struct {
	Data []entity.RewardRedemption `json:"data"`
	Meta commonDto.PaginationMeta  `json:"meta"`
}
