package entity

// LevelTier is one step of the level ladder.
type LevelTier struct {
	Level     int
	Name      string
	MinPoints int
}

// LevelTiers is ordered by MinPoints ascending.
var LevelTiers = []LevelTier{
	{Level: 1, Name: "Rookie", MinPoints: 0},
	{Level: 2, Name: "Regular", MinPoints: 100},
	{Level: 3, Name: "Athlete", MinPoints: 600},
	{Level: 4, Name: "Champion", MinPoints: 3000},
	{Level: 5, Name: "Elite", MinPoints: 8000},
	{Level: 6, Name: "Legend", MinPoints: 20000},
}

// LevelFor returns the highest level whose threshold totalPoints reaches.
func LevelFor(totalPoints int) int {
	level := LevelTiers[0].Level
	for _, tier := range LevelTiers {
		if totalPoints >= tier.MinPoints {
			level = tier.Level
		}
	}
	return level
}

// TierFor returns the tier for level, clamped to the ladder.
func TierFor(level int) LevelTier {
	if level < 1 {
		return LevelTiers[0]
	}
	if level > len(LevelTiers) {
		return LevelTiers[len(LevelTiers)-1]
	}
	return LevelTiers[level-1]
}
