package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Streak categories
const (
	CategoryWorkout      = "workout"
	CategoryDiet         = "diet"
	CategoryMentalHealth = "mental_health"
)

// Achievement types
const (
	AchievementTypePoints = "points"
	AchievementTypeStreak = "streak"
	AchievementTypeLevel  = "level"
)

// Redemption statuses. Only pending is written here; the others are set by fulfilment.
const (
	RedemptionPending   = "pending"
	RedemptionFulfilled = "fulfilled"
	RedemptionRejected  = "rejected"
)

const ActivityAchievementUnlocked = "achievement_unlocked"

func IsValidCategory(category string) bool {
	switch category {
	case CategoryWorkout, CategoryDiet, CategoryMentalHealth:
		return true
	}
	return false
}

// PointLog is the append-only ledger. Rows are never updated or deleted.
type PointLog struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;index:idx_point_logs_user_date,priority:1;not null" json:"user_id"`
	Points      int       `gorm:"not null" json:"points"`
	Activity    string    `gorm:"size:50;not null" json:"activity"` // 'workout_logged', 'diet_logged', 'achievement_unlocked'
	Description string    `gorm:"type:text" json:"description"`
	ReferenceID string    `gorm:"size:64" json:"reference_id,omitempty"`
	CreatedAt   time.Time `gorm:"index:idx_point_logs_user_date,priority:2" json:"created_at"`
}

func (p *PointLog) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// UserStats is the per-user aggregate: balance, rollups, level and streaks.
type UserStats struct {
	UserID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	TotalPoints          int        `gorm:"not null;index:idx_user_stats_total" json:"total_points"`
	WeeklyPoints         int        `gorm:"not null;index:idx_user_stats_weekly" json:"weekly_points"`
	MonthlyPoints        int        `gorm:"not null;index:idx_user_stats_monthly" json:"monthly_points"`
	Level                int        `gorm:"not null" json:"level"`
	WorkoutStreak        int        `gorm:"not null" json:"workout_streak"`
	DietStreak           int        `gorm:"not null" json:"diet_streak"`
	MentalHealthStreak   int        `gorm:"not null" json:"mental_health_streak"`
	LastWorkoutDate      *time.Time `json:"last_workout_date,omitempty"`
	LastDietDate         *time.Time `json:"last_diet_date,omitempty"`
	LastMentalHealthDate *time.Time `json:"last_mental_health_date,omitempty"`
	CreatedAt            time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// AddPoints credits earned points to the balance and both rollups.
func (s *UserStats) AddPoints(points int) {
	s.TotalPoints += points
	s.WeeklyPoints += points
	s.MonthlyPoints += points
	s.syncLevel()
}

// AddBonus credits achievement bonus points to the balance only.
func (s *UserStats) AddBonus(points int) {
	s.TotalPoints += points
	s.syncLevel()
}

// Debit removes spent points from the balance. Level is never demoted.
func (s *UserStats) Debit(points int) {
	s.TotalPoints -= points
}

func (s *UserStats) syncLevel() {
	if l := LevelFor(s.TotalPoints); l > s.Level {
		s.Level = l
	}
}

// Streak returns the counter for category, false for unknown categories.
func (s *UserStats) Streak(category string) (int, bool) {
	switch category {
	case CategoryWorkout:
		return s.WorkoutStreak, true
	case CategoryDiet:
		return s.DietStreak, true
	case CategoryMentalHealth:
		return s.MentalHealthStreak, true
	}
	return 0, false
}

func (s *UserStats) SetStreak(category string, value int) {
	switch category {
	case CategoryWorkout:
		s.WorkoutStreak = value
	case CategoryDiet:
		s.DietStreak = value
	case CategoryMentalHealth:
		s.MentalHealthStreak = value
	}
}

func (s *UserStats) LastActiveDate(category string) *time.Time {
	switch category {
	case CategoryWorkout:
		return s.LastWorkoutDate
	case CategoryDiet:
		return s.LastDietDate
	case CategoryMentalHealth:
		return s.LastMentalHealthDate
	}
	return nil
}

func (s *UserStats) SetLastActiveDate(category string, date time.Time) {
	d := date
	switch category {
	case CategoryWorkout:
		s.LastWorkoutDate = &d
	case CategoryDiet:
		s.LastDietDate = &d
	case CategoryMentalHealth:
		s.LastMentalHealthDate = &d
	}
}

// ActivityLog records one qualifying activity. Streak continuation looks these up.
type ActivityLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;index:idx_activity_logs_lookup,priority:1;not null" json:"user_id"`
	Category   string    `gorm:"size:20;index:idx_activity_logs_lookup,priority:2;not null" json:"category"`
	OccurredAt time.Time `gorm:"index:idx_activity_logs_lookup,priority:3;not null" json:"occurred_at"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Achievement is a catalog definition. The catalog is seeded externally.
type Achievement struct {
	ID          string `gorm:"size:64;primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Icon        string `gorm:"size:20" json:"icon"`
	Type        string `gorm:"size:20;not null" json:"type"`      // 'points', 'streak', 'level'
	Category    string `gorm:"size:20" json:"category,omitempty"` // streak type only
	Requirement int    `gorm:"not null" json:"requirement"`
	BonusPoints int    `gorm:"not null" json:"bonus_points"`
	SortOrder   int    `gorm:"not null;index:idx_achievements_order" json:"sort_order"`
}

// UserAchievement records an unlock. At most one row per (user, achievement).
type UserAchievement struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_achievements_unique,priority:1;not null" json:"user_id"`
	AchievementID string    `gorm:"size:64;uniqueIndex:idx_user_achievements_unique,priority:2;not null" json:"achievement_id"`
	UnlockedDate  time.Time `gorm:"not null" json:"unlocked_date"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (u *UserAchievement) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type Reward struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	PointsCost  int       `gorm:"not null" json:"points_cost"`
	IsActive    bool      `gorm:"not null" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (r *Reward) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type RewardRedemption struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;index:idx_reward_redemptions_user;not null" json:"user_id"`
	RewardID    uuid.UUID `gorm:"type:uuid;not null" json:"reward_id"`
	RewardName  string    `gorm:"size:100;not null" json:"reward_name"`
	PointsSpent int       `gorm:"not null" json:"points_spent"`
	Status      string    `gorm:"size:20;not null" json:"status"`
	RedeemedAt  time.Time `gorm:"not null" json:"redeemed_at"`
}

func (r *RewardRedemption) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
