package dto

type PaginationQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// Normalize fills defaults and returns limit and offset.
func (q PaginationQuery) Normalize() (limit, offset int) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 20
	}
	return q.Limit, (q.Page - 1) * q.Limit
}

type PaginationMeta struct {
	CurrentPage int `json:"current_page"`
	Limit       int `json:"limit"`
	Count       int `json:"count"`
}

type GamificationStatus struct {
	Level         int     `json:"level"`
	LevelName     string  `json:"level_name"`
	NextLevel     string  `json:"next_level"`
	CurrentPoints int     `json:"current_points"`
	TargetPoints  int     `json:"target_points"`
	Progress      float64 `json:"progress"` // Percentage
	WeeklyPoints  int     `json:"weekly_points"`
	WeeklyLabel   string  `json:"weekly_label"`
}
