package fantasy

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/fantasy-five/internal/domain/player"
	"github.com/riskibarqy/fantasy-five/internal/domain/scoring"
)

var (
	ErrInvalidSquadSize       = errors.New("invalid squad size")
	ErrExceededBudget         = errors.New("budget cap exceeded")
	ErrInvalidFormation       = errors.New("formation requirement not met")
	ErrUnknownPlayerPosition  = errors.New("unknown player position")
	ErrDuplicatePlayerInSquad = errors.New("duplicate player in squad")
	ErrCaptainNotInSquad      = errors.New("captain must be one of the selected players")
)

// Rules stores squad validation and transfer parameters.
type Rules struct {
	SquadSize     int
	BudgetCap     int64
	MinByPosition map[player.Position]int
	MaxByPosition map[player.Position]int
	FreeTransfers int
	TransferCost  int
}

func DefaultRules() Rules {
	return Rules{
		SquadSize: 5,
		BudgetCap: 500,
		MinByPosition: map[player.Position]int{
			player.PositionGoalkeeper: 1,
			player.PositionDefender:   1,
			player.PositionMidfielder: 1,
			player.PositionAttacker:   1,
		},
		MaxByPosition: map[player.Position]int{
			player.PositionGoalkeeper: 1,
			player.PositionDefender:   3,
			player.PositionMidfielder: 3,
			player.PositionAttacker:   3,
		},
		FreeTransfers: 1,
		TransferCost:  scoring.DefaultTransferCost,
	}
}

// ValidateSelection checks a full squad and returns its cost.
func ValidateSelection(picks []SquadPick, captainID string, rules Rules) (int64, error) {
	if len(picks) != rules.SquadSize {
		return 0, fmt.Errorf("%w: expected %d, got %d", ErrInvalidSquadSize, rules.SquadSize, len(picks))
	}

	positionCounter := make(map[player.Position]int)
	playerSet := make(map[string]struct{}, len(picks))
	var totalCost int64

	for _, pick := range picks {
		if pick.PlayerID == "" {
			return 0, fmt.Errorf("%w: player id is required", ErrInvalidSquadSize)
		}
		if _, exists := playerSet[pick.PlayerID]; exists {
			return 0, fmt.Errorf("%w: %s", ErrDuplicatePlayerInSquad, pick.PlayerID)
		}
		playerSet[pick.PlayerID] = struct{}{}

		if _, ok := player.AllPositions[pick.Position]; !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnknownPlayerPosition, pick.Position)
		}
		positionCounter[pick.Position]++
		totalCost += pick.Price
	}

	if _, ok := playerSet[captainID]; !ok {
		return 0, fmt.Errorf("%w: captain=%s", ErrCaptainNotInSquad, captainID)
	}

	for pos, minRequired := range rules.MinByPosition {
		if positionCounter[pos] < minRequired {
			return 0, fmt.Errorf("%w: pos=%s min=%d current=%d", ErrInvalidFormation, pos, minRequired, positionCounter[pos])
		}
	}
	for pos, maxAllowed := range rules.MaxByPosition {
		if positionCounter[pos] > maxAllowed {
			return 0, fmt.Errorf("%w: pos=%s max=%d current=%d", ErrInvalidFormation, pos, maxAllowed, positionCounter[pos])
		}
	}

	if totalCost > rules.BudgetCap {
		return 0, fmt.Errorf("%w: cap=%d used=%d", ErrExceededBudget, rules.BudgetCap, totalCost)
	}

	return totalCost, nil
}

// CountTransfers is the number of players in next that are not in baseline.
// An empty baseline means a first selection, which costs nothing.
func CountTransfers(baseline, next []string) int {
	if len(baseline) == 0 {
		return 0
	}
	prev := make(map[string]struct{}, len(baseline))
	for _, id := range baseline {
		prev[id] = struct{}{}
	}
	count := 0
	for _, id := range next {
		if _, ok := prev[id]; !ok {
			count++
		}
	}
	return count
}

// TransferPenalty applies the rules' allowance and cost to a transfer count.
func (r Rules) TransferPenalty(transfers, freeTransfers int) int {
	return scoring.TransferPenaltyWithCost(transfers, freeTransfers, r.TransferCost)
}
