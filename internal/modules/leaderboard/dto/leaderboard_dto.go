package dto

import (
	commonDto "anoa.com/fitquest/pkg/dto"
	"github.com/google/uuid"
)

// LeaderboardEntry represents a single user entry in the leaderboard.
// Position is the ranking in the leaderboard (1-based).
// Points is the score for the requested timeframe.
type LeaderboardEntry struct {
	UserID             uuid.UUID                    `json:"user_id"`
	DisplayName        string                       `json:"display_name"`
	AvatarURL          *string                      `json:"avatar_url,omitempty"`
	Position           int                          `json:"position"`
	Points             int                          `json:"points"`
	GamificationStatus commonDto.GamificationStatus `json:"gamification_status"`
}

type LeaderboardResponse struct {
	Timeframe string             `json:"timeframe"`
	Entries   []LeaderboardEntry `json:"entries"`
}
