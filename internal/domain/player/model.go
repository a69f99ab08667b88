package player

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrUnknownPosition = errors.New("unknown player position")
	ErrInvalidPlayer   = errors.New("invalid player")
)

// Position represents the four five-a-side roles used by the scoring table.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionAttacker   Position = "ATT"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionAttacker:   {},
}

// ParsePosition normalizes case and rejects anything outside AllPositions.
func ParsePosition(raw string) (Position, error) {
	pos := Position(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := AllPositions[pos]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPosition, raw)
	}
	return pos, nil
}

// DefaultPrice is 5.0 in tenths.
const DefaultPrice int64 = 50

// Player is a selectable footballer. Price is stored in tenths (5.0 == 50).
// Players are never deleted; IsActive=false hides them from selection.
type Player struct {
	ID          string
	Name        string
	Position    Position
	TeamName    string
	Price       int64
	TotalPoints int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidPlayer)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPlayer)
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPosition, p.Position)
	}
	if p.Price <= 0 {
		return fmt.Errorf("%w: price must be greater than zero", ErrInvalidPlayer)
	}
	return nil
}

// Filter narrows List results. Zero value lists every active player.
type Filter struct {
	Position        Position
	IncludeInactive bool
}
