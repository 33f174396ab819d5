package gamify

// Achievement is a one-way unlockable milestone keyed to a points
// threshold. The catalog is static and loaded with the process; unlocked
// ids are stored per user and never revoked.
type Achievement struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	PointsRequired int64  `json:"points_required"`
	Icon           string `json:"icon"`
	Color          string `json:"color"`
}

// Catalog entries are ordered by strictly increasing PointsRequired.
// The four upper thresholds intentionally mirror the level thresholds, so
// those unlocks co-fire with level-ups; first-read is level-independent.
var catalog = []Achievement{
	{ID: "first-read", Name: "First Read", Description: "Read your first post", PointsRequired: 1, Icon: "📖", Color: "gray"},
	{ID: "century-reader", Name: "Century Reader", Description: "Earn 100 reading points", PointsRequired: 100, Icon: "💯", Color: "emerald"},
	{ID: "bookworm", Name: "Bookworm", Description: "Earn 1,000 reading points", PointsRequired: 1000, Icon: "🐛", Color: "blue"},
	{ID: "scholar", Name: "Scholar", Description: "Earn 5,000 reading points", PointsRequired: 5000, Icon: "🎓", Color: "purple"},
	{ID: "legend", Name: "Legend", Description: "Earn 10,000 reading points", PointsRequired: 10000, Icon: "👑", Color: "amber"},
}

// Catalog returns the full achievement catalog in threshold order.
func Catalog() []Achievement {
	out := make([]Achievement, len(catalog))
	copy(out, catalog)
	return out
}

// ByID looks up a catalog entry.
func ByID(id string) (Achievement, bool) {
	for _, a := range catalog {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

// UnlockedFor returns the ids of every achievement whose threshold is
// reached at the given point total.
func UnlockedFor(points int64) []string {
	var ids []string
	for _, a := range catalog {
		if a.PointsRequired <= points {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// NewlyUnlocked returns catalog entries reached at the given total that
// are not already in the stored set. Appending the result to the stored
// set keeps unlocking monotone and idempotent per id.
func NewlyUnlocked(unlocked []string, points int64) []Achievement {
	have := make(map[string]struct{}, len(unlocked))
	for _, id := range unlocked {
		have[id] = struct{}{}
	}

	var out []Achievement
	for _, a := range catalog {
		if a.PointsRequired > points {
			break
		}
		if _, ok := have[a.ID]; !ok {
			out = append(out, a)
		}
	}
	return out
}

// NextMilestone returns the first achievement still above the given point
// total, or nil when everything is unlocked.
func NextMilestone(points int64) *Achievement {
	for _, a := range catalog {
		if a.PointsRequired > points {
			next := a
			return &next
		}
	}
	return nil
}
