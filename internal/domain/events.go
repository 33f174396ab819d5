package domain

import "reader_rewards/internal/gamify"

// Reward event types pushed to connected clients.
const (
	EventLevelUp             = "level_up"
	EventAchievementUnlocked = "achievement_unlocked"
)

// RewardEvent is the payload for the live toast/banner notifications.
type RewardEvent struct {
	Type        string              `json:"type"`
	TotalPoints int64               `json:"total_points"`
	Level       *gamify.LevelInfo   `json:"level,omitempty"`
	Achievement *gamify.Achievement `json:"achievement,omitempty"`
}
