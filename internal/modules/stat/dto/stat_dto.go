package dto

type CommunityStats struct {
	TotalUsers         int64 `json:"total_users"`
	ActiveUsers        int64 `json:"active_users"`
	PointsAwarded      int64 `json:"points_awarded"`
	PointsRedeemed     int64 `json:"points_redeemed"`
	ActivitiesToday    int64 `json:"activities_today"`
	AchievementsEarned int64 `json:"achievements_earned"`
}
