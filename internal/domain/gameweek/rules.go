package gameweek

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidGameweek   = errors.New("invalid gameweek")
	ErrInvalidTransition = errors.New("invalid gameweek transition")
	ErrAnotherActive     = errors.New("another gameweek is already active")
	ErrVotingOpenElse    = errors.New("voting is already open for another gameweek")
	ErrDuplicateNumber   = errors.New("gameweek number already exists")
)

// CanActivate checks upcoming -> active. active is the id of the currently
// active gameweek, empty when there is none.
func CanActivate(g Gameweek, active string) error {
	switch g.Status {
	case StatusUpcoming:
	case StatusActive:
		return fmt.Errorf("%w: gameweek %d is already active", ErrInvalidTransition, g.Number)
	default:
		return fmt.Errorf("%w: finished gameweek %d cannot be re-activated", ErrInvalidTransition, g.Number)
	}
	if active != "" && active != g.ID {
		return fmt.Errorf("%w: id=%s", ErrAnotherActive, active)
	}
	return nil
}

// CanCalculate checks active -> finished, or a recalculation of a finished gameweek.
func CanCalculate(g Gameweek) error {
	if g.Status == StatusUpcoming {
		return fmt.Errorf("%w: gameweek %d has not started", ErrInvalidTransition, g.Number)
	}
	return nil
}

// CanOpenVoting checks the voting flag. openID is the gameweek that currently
// has voting open, empty when none.
func CanOpenVoting(g Gameweek, openID string) error {
	if g.Status == StatusUpcoming {
		return fmt.Errorf("%w: voting needs an active or finished gameweek", ErrInvalidTransition)
	}
	if g.VotingOpen {
		return fmt.Errorf("%w: voting already open for gameweek %d", ErrInvalidTransition, g.Number)
	}
	if openID != "" && openID != g.ID {
		return fmt.Errorf("%w: id=%s", ErrVotingOpenElse, openID)
	}
	return nil
}

func CanCloseVoting(g Gameweek) error {
	if !g.VotingOpen {
		return fmt.Errorf("%w: voting is not open for gameweek %d", ErrInvalidTransition, g.Number)
	}
	return nil
}

// SeasonStart is the next Saturday 12:00 UTC strictly after now. Seeded
// seasons use it as the first deadline.
func SeasonStart(now time.Time) time.Time {
	now = now.UTC()
	days := (int(time.Saturday) - int(now.Weekday()) + 7) % 7
	start := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, time.UTC).AddDate(0, 0, days)
	if !start.After(now) {
		start = start.AddDate(0, 0, 7)
	}
	return start
}
