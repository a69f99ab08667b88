package matchstat

import (
	"time"

	"github.com/riskibarqy/fantasy-five/internal/domain/scoring"
)

// Entry is the admin-entered stat line for one (player, gameweek) pair with
// the points it was last scored at.
type Entry struct {
	GameweekID string
	PlayerID   string
	Stat       scoring.Stat
	Points     int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Key identifies an entry.
func (e Entry) Key() string {
	return Key(e.GameweekID, e.PlayerID)
}

func Key(gameweekID, playerID string) string {
	return gameweekID + ":" + playerID
}
