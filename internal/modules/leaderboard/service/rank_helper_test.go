package service

import "testing"

func TestGetGamificationStatus(t *testing.T) {
	tests := []struct {
		name         string
		level        int
		total        int
		weekly       int
		wantName     string
		wantNext     string
		wantTarget   int
		wantProgress float64
		wantLabel    string
	}{
		{"newcomer", 1, 0, 0, "Rookie", "Regular", 100, 0, ""},
		{"halfway to regular", 1, 50, 60, "Rookie", "Regular", 100, 50, "📈 Active"},
		{"athlete", 3, 1000, 200, "Athlete", "Champion", 3000, 33.33, "⚡ Trending"},
		{"spent below tier keeps name", 3, 100, 0, "Athlete", "Champion", 3000, 3.33, ""},
		{"legend", 6, 25000, 400, "Legend", "Max Level", 20000, 100, "🔥 On Fire!"},
		{"level out of range clamps", 9, 25000, 0, "Legend", "Max Level", 20000, 100, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetGamificationStatus(tt.level, tt.total, tt.weekly)
			if got.LevelName != tt.wantName || got.NextLevel != tt.wantNext {
				t.Errorf("names = %s/%s, want %s/%s", got.LevelName, got.NextLevel, tt.wantName, tt.wantNext)
			}
			if got.TargetPoints != tt.wantTarget {
				t.Errorf("TargetPoints = %d, want %d", got.TargetPoints, tt.wantTarget)
			}
			if got.Progress != tt.wantProgress {
				t.Errorf("Progress = %v, want %v", got.Progress, tt.wantProgress)
			}
			if got.WeeklyLabel != tt.wantLabel {
				t.Errorf("WeeklyLabel = %q, want %q", got.WeeklyLabel, tt.wantLabel)
			}
		})
	}
}
