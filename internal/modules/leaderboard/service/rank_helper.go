package service

import (
	"math"

	"anoa.com/fitquest/internal/entity"
	"anoa.com/fitquest/pkg/dto"
)

// Weekly activity thresholds
// These define the activity labels based on points earned this week.
const (
	WeeklyOnFire   = 300 // 🔥 On Fire! - Very active this week
	WeeklyTrending = 150 // ⚡ Trending - Above average activity
	WeeklyActive   = 50  // 📈 Active - Steady contributor
)

// GetGamificationStatus describes a user's standing from the stored level and
// balance. The level comes from the aggregate so spending points never shows a
// lower tier.
func GetGamificationStatus(level, totalPoints, weeklyPoints int) dto.GamificationStatus {
	tier := entity.TierFor(level)

	status := dto.GamificationStatus{
		Level:         tier.Level,
		LevelName:     tier.Name,
		CurrentPoints: totalPoints,
		WeeklyPoints:  weeklyPoints,
	}

	if tier.Level >= len(entity.LevelTiers) {
		status.NextLevel = "Max Level"
		status.TargetPoints = tier.MinPoints
		status.Progress = 100
	} else {
		next := entity.LevelTiers[tier.Level]
		status.NextLevel = next.Name
		status.TargetPoints = next.MinPoints
		status.Progress = math.Min(100, math.Max(0, float64(totalPoints)/float64(next.MinPoints)*100))
	}

	switch {
	case weeklyPoints >= WeeklyOnFire:
		status.WeeklyLabel = "🔥 On Fire!"
	case weeklyPoints >= WeeklyTrending:
		status.WeeklyLabel = "⚡ Trending"
	case weeklyPoints >= WeeklyActive:
		status.WeeklyLabel = "📈 Active"
	}

	// Round progress to 2 decimal places
	status.Progress = math.Round(status.Progress*100) / 100

	return status
}
