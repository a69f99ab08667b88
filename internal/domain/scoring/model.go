package scoring

import (
	"fmt"

	"github.com/riskibarqy/fantasy-five/internal/domain/player"
)

// MinPlayerPoints is the floor for a single player's gameweek score.
const MinPlayerPoints = -10

// CaptainMultiplier applies to the captain's clamped score.
const CaptainMultiplier = 2

// DefaultTransferCost is deducted per transfer beyond the free allowance.
const DefaultTransferCost = 4

// SavesPerBonus is how many saves earn one save bonus unit.
const SavesPerBonus = 3

// MaxStatCount is the largest accepted value for any stat counter.
const MaxStatCount = 999

// Stat is the raw event tally for one player in one gameweek.
type Stat struct {
	MinutesPlayed   int  `json:"minutes_played" validate:"gte=0,lte=999"`
	Goals           int  `json:"goals" validate:"gte=0,lte=999"`
	Assists         int  `json:"assists" validate:"gte=0,lte=999"`
	CleanSheets     int  `json:"clean_sheet" validate:"gte=0,lte=999"`
	Saves           int  `json:"saves" validate:"gte=0,lte=999"`
	DefensiveErrors int  `json:"defensive_errors" validate:"gte=0,lte=999"`
	Nutmegs         int  `json:"nutmegs" validate:"gte=0,lte=999"`
	OwnGoals        int  `json:"own_goals" validate:"gte=0,lte=999"`
	PenaltiesScored int  `json:"penalties_scored" validate:"gte=0,lte=999"`
	PenaltiesSaved  int  `json:"penalties_saved" validate:"gte=0,lte=999"`
	PenaltiesMissed int  `json:"penalties_missed" validate:"gte=0,lte=999"`
	MVP             bool `json:"mvp"`
}

// Validate rejects negative counters and counters above MaxStatCount;
// nothing is coerced or clamped.
func (s Stat) Validate() error {
	counters := []struct {
		name  string
		value int
	}{
		{"minutes_played", s.MinutesPlayed},
		{"goals", s.Goals},
		{"assists", s.Assists},
		{"clean_sheet", s.CleanSheets},
		{"saves", s.Saves},
		{"defensive_errors", s.DefensiveErrors},
		{"nutmegs", s.Nutmegs},
		{"own_goals", s.OwnGoals},
		{"penalties_scored", s.PenaltiesScored},
		{"penalties_saved", s.PenaltiesSaved},
		{"penalties_missed", s.PenaltiesMissed},
	}
	for _, c := range counters {
		if c.value < 0 {
			return fmt.Errorf("%w: %s=%d", ErrNegativeCount, c.name, c.value)
		}
		if c.value > MaxStatCount {
			return fmt.Errorf("%w: %s=%d", ErrCountOutOfRange, c.name, c.value)
		}
	}
	return nil
}

// Weights is one row of the scoring table.
type Weights struct {
	Played         int `json:"played"`
	Goal           int `json:"goal"`
	Assist         int `json:"assist"`
	CleanSheet     int `json:"clean_sheet"`
	SavePer3       int `json:"save_per_3"`
	Nutmeg         int `json:"nutmeg"`
	OwnGoal        int `json:"own_goal"`
	DefensiveError int `json:"defensive_error"`
	PenaltyScored  int `json:"penalty_scored"`
	PenaltySaved   int `json:"penalty_saved"`
	PenaltyMissed  int `json:"penalty_missed"`
	MVP            int `json:"mvp"`
}

func baseWeights(goal, cleanSheet, savePer3 int) Weights {
	return Weights{
		Played:         1,
		Goal:           goal,
		Assist:         3,
		CleanSheet:     cleanSheet,
		SavePer3:       savePer3,
		Nutmeg:         2,
		OwnGoal:        -2,
		DefensiveError: -1,
		PenaltyScored:  3,
		PenaltySaved:   5,
		PenaltyMissed:  -2,
		MVP:            3,
	}
}

var table = map[player.Position]Weights{
	player.PositionGoalkeeper: baseWeights(6, 5, 1),
	player.PositionDefender:   baseWeights(5, 3, 0),
	player.PositionMidfielder: baseWeights(5, 2, 0),
	player.PositionAttacker:   baseWeights(4, 1, 0),
}

// WeightsFor returns the scoring row for a position.
func WeightsFor(position player.Position) (Weights, error) {
	w, ok := table[position]
	if !ok {
		return Weights{}, fmt.Errorf("%w: %q", ErrUnknownPosition, position)
	}
	return w, nil
}

// RuleSet is the full table plus the team-level constants.
type RuleSet struct {
	Positions         map[player.Position]Weights `json:"positions"`
	MinPlayerPoints   int                         `json:"min_player_points"`
	CaptainMultiplier int                         `json:"captain_multiplier"`
	SavesPerBonus     int                         `json:"saves_per_bonus"`
	TransferCost      int                         `json:"transfer_cost"`
}

// Rules returns a copy of the scoring table.
func Rules() RuleSet {
	positions := make(map[player.Position]Weights, len(table))
	for pos, w := range table {
		positions[pos] = w
	}
	return RuleSet{
		Positions:         positions,
		MinPlayerPoints:   MinPlayerPoints,
		CaptainMultiplier: CaptainMultiplier,
		SavesPerBonus:     SavesPerBonus,
		TransferCost:      DefaultTransferCost,
	}
}

// BreakdownItem is one labelled contribution, e.g. "Goals (2x)" = 8.
type BreakdownItem struct {
	Label  string `json:"label"`
	Points int    `json:"points"`
}

// PointsBreakdown explains a score. Total is the raw sum of Items; Points is
// Total after the floor clamp.
type PointsBreakdown struct {
	Items  []BreakdownItem `json:"items"`
	Total  int             `json:"total"`
	Points int             `json:"points"`
}

// PlayerScore is one squad member's clamped gameweek score.
type PlayerScore struct {
	PlayerID string
	Points   int
}

// CountedScore is a PlayerScore after the captain multiplier.
type CountedScore struct {
	PlayerID   string
	BasePoints int
	Multiplier int
	Counted    int
}

// TeamResult is a team's gameweek score.
type TeamResult struct {
	Players         []CountedScore
	GrossPoints     int
	TransferPenalty int
	Total           int
}
