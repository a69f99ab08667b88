package fantasy

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-five/internal/domain/player"
)

// ErrTeamExists is returned when a user already owns a team.
var ErrTeamExists = errors.New("user already has a team")

// Team is a user's fantasy team. One per user.
type Team struct {
	ID              string
	UserID          string
	Name            string
	ManagerName     string
	BudgetRemaining int64
	TotalPoints     int
	FreeTransfers   int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("team id is required")
	}
	if strings.TrimSpace(t.UserID) == "" {
		return fmt.Errorf("team user id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if t.FreeTransfers < 0 {
		return fmt.Errorf("free transfers must not be negative")
	}
	return nil
}

// Selection is a team's squad for one gameweek. GameweekPoints is the net
// team score after the transfer penalty; it is only meaningful once Scored.
type Selection struct {
	TeamID          string
	GameweekID      string
	GameweekNumber  int
	PlayerIDs       []string
	CaptainID       string
	TransfersMade   int
	TransferPenalty int
	SquadCost       int64
	GameweekPoints  int
	Scored          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Has reports whether playerID is in the squad.
func (s Selection) Has(playerID string) bool {
	return slices.Contains(s.PlayerIDs, playerID)
}

// RolledOver copies s into another gameweek with its derived fields reset.
func (s Selection) RolledOver(gameweekID string, gameweekNumber int, now time.Time) Selection {
	return Selection{
		TeamID:         s.TeamID,
		GameweekID:     gameweekID,
		GameweekNumber: gameweekNumber,
		PlayerIDs:      slices.Clone(s.PlayerIDs),
		CaptainID:      s.CaptainID,
		SquadCost:      s.SquadCost,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// SquadPick represents one selected player with the fields squad rules need.
type SquadPick struct {
	PlayerID string
	Position player.Position
	Price    int64
}

// PicksFromPlayers converts players to picks in the given order.
func PicksFromPlayers(items []player.Player) []SquadPick {
	out := make([]SquadPick, 0, len(items))
	for _, p := range items {
		out = append(out, SquadPick{PlayerID: p.ID, Position: p.Position, Price: p.Price})
	}
	return out
}
