package gamify

// Level thresholds. A level is derived from total points only, so the
// write path and the display path share this single implementation.
const (
	MinLevel = 1
	MaxLevel = 5
)

var levelThresholds = [...]int64{0, 100, 1000, 5000, 10000}

// LevelInfo describes how a level is rendered by the frontend.
type LevelInfo struct {
	Level      int    `json:"level"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	Background string `json:"background"`
}

var levelTable = [...]LevelInfo{
	{Level: 1, Name: "Novice Reader", Color: "gray", Background: "gray-light"},
	{Level: 2, Name: "Bookworm", Color: "emerald", Background: "emerald-light"},
	{Level: 3, Name: "Avid Reader", Color: "blue", Background: "blue-light"},
	{Level: 4, Name: "Scholar", Color: "purple", Background: "purple-light"},
	{Level: 5, Name: "Legendary Reader", Color: "amber", Background: "amber-light"},
}

// LevelForPoints maps a point total to a level in [MinLevel, MaxLevel].
func LevelForPoints(points int64) int {
	level := MinLevel
	for i := 1; i < len(levelThresholds); i++ {
		if points >= levelThresholds[i] {
			level = i + 1
		}
	}
	return level
}

// InfoForLevel returns display info for a level. Out-of-range input falls
// back to the level-1 entry rather than erroring: stored levels can be
// corrupted or predate the current table, and the profile widget must
// still render something.
func InfoForLevel(level int) LevelInfo {
	if level < MinLevel || level > MaxLevel {
		return levelTable[0]
	}
	return levelTable[level-1]
}
