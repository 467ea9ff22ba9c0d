package dto

import (
	"anoa.com/fitquest/internal/entity"
	commonDto "anoa.com/fitquest/pkg/dto"
)

type UpdateProfileInput struct {
	DisplayName *string `json:"display_name" validate:"omitempty,min=1,max=100"`
	AvatarURL   *string `json:"avatar_url" validate:"omitempty,url,max=500"`
}

// ProfileResponse is a user with their gamification summary. Stats is nil
// until the user earns their first points.
type ProfileResponse struct {
	User                 *entity.User                 `json:"user"`
	Stats                *entity.UserStats            `json:"stats,omitempty"`
	GamificationStatus   commonDto.GamificationStatus `json:"gamification_status"`
	AchievementsUnlocked int                          `json:"achievements_unlocked"`
	AchievementsTotal    int                          `json:"achievements_total"`
}
