package entity

import (
	"testing"
	"time"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		points int
		want   int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{599, 2},
		{600, 3},
		{3000, 4},
		{8000, 5},
		{20000, 6},
		{1_000_000, 6},
	}
	for _, tt := range tests {
		if got := LevelFor(tt.points); got != tt.want {
			t.Errorf("LevelFor(%d) = %d, want %d", tt.points, got, tt.want)
		}
	}
}

func TestUserStatsLevelNeverDemotes(t *testing.T) {
	s := &UserStats{Level: 1}
	s.AddPoints(650)
	if s.Level != 3 {
		t.Fatalf("level after 650 points = %d, want 3", s.Level)
	}

	s.Debit(600)
	if s.TotalPoints != 50 {
		t.Errorf("total after debit = %d, want 50", s.TotalPoints)
	}
	if s.Level != 3 {
		t.Errorf("level after debit = %d, want 3 (no demotion)", s.Level)
	}
}

func TestUserStatsBonusOnlyTouchesTotal(t *testing.T) {
	s := &UserStats{Level: 1}
	s.AddPoints(10)
	s.AddBonus(20)

	if s.TotalPoints != 30 || s.WeeklyPoints != 10 || s.MonthlyPoints != 10 {
		t.Errorf("got total=%d weekly=%d monthly=%d, want 30/10/10", s.TotalPoints, s.WeeklyPoints, s.MonthlyPoints)
	}
}

func TestUserStatsStreakAccessors(t *testing.T) {
	s := &UserStats{}
	day := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)

	for _, category := range []string{CategoryWorkout, CategoryDiet, CategoryMentalHealth} {
		s.SetStreak(category, 4)
		s.SetLastActiveDate(category, day)

		got, ok := s.Streak(category)
		if !ok || got != 4 {
			t.Errorf("Streak(%q) = (%d, %v), want (4, true)", category, got, ok)
		}
		if last := s.LastActiveDate(category); last == nil || !last.Equal(day) {
			t.Errorf("LastActiveDate(%q) = %v, want %v", category, last, day)
		}
	}

	if _, ok := s.Streak("sleep"); ok {
		t.Error("unknown category should not resolve a streak")
	}
	if s.LastActiveDate("sleep") != nil {
		t.Error("unknown category should have no last active date")
	}
}
