package gameweek

import (
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle position of a gameweek. Voting is tracked separately.
type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

type Gameweek struct {
	ID           string
	Number       int
	Name         string
	Deadline     time.Time
	Status       Status
	VotingOpen   bool
	ActivatedAt  *time.Time
	CalculatedAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (g Gameweek) IsActive() bool   { return g.Status == StatusActive }
func (g Gameweek) IsFinished() bool { return g.Status == StatusFinished }

// AcceptsSquadEdits reports whether squads may still change at now.
func (g Gameweek) AcceptsSquadEdits(now time.Time) bool {
	return g.Status == StatusActive && now.Before(g.Deadline)
}

func (g Gameweek) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidGameweek)
	}
	if g.Number <= 0 {
		return fmt.Errorf("%w: number must be greater than zero", ErrInvalidGameweek)
	}
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidGameweek)
	}
	if g.Deadline.IsZero() {
		return fmt.Errorf("%w: deadline is required", ErrInvalidGameweek)
	}
	switch g.Status {
	case StatusUpcoming, StatusActive, StatusFinished:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidGameweek, g.Status)
	}
	if g.VotingOpen && g.Status == StatusUpcoming {
		return fmt.Errorf("%w: voting cannot be open before activation", ErrInvalidGameweek)
	}
	return nil
}
