package minileague

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// JoinCodeLength is the size of generated join codes.
const JoinCodeLength = 8

var (
	ErrInvalidLeague = errors.New("invalid mini league")
	ErrAlreadyMember = errors.New("user is already a member")
	ErrDuplicateCode = errors.New("join code already in use")
)

// League is a private leaderboard identified by a shareable join code.
type League struct {
	ID        string
	Name      string
	JoinCode  string
	CreatedBy string
	CreatedAt time.Time
}

func (l League) Validate() error {
	if strings.TrimSpace(l.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidLeague)
	}
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidLeague)
	}
	if len(l.JoinCode) != JoinCodeLength {
		return fmt.Errorf("%w: join code must be %d characters", ErrInvalidLeague, JoinCodeLength)
	}
	if strings.TrimSpace(l.CreatedBy) == "" {
		return fmt.Errorf("%w: creator is required", ErrInvalidLeague)
	}
	return nil
}

// NormalizeCode upper-cases and trims a user supplied join code.
func NormalizeCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

type Membership struct {
	LeagueID string
	UserID   string
	JoinedAt time.Time
}

// Standing is one member's row in a league table.
type Standing struct {
	Rank        int
	UserID      string
	TeamID      string
	TeamName    string
	ManagerName string
	TotalPoints int
}
