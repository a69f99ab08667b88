package scoring

import (
	"fmt"

	"github.com/riskibarqy/fantasy-five/internal/domain/player"
)

// Calculate returns the clamped gameweek points for one player.
func Calculate(stat Stat, position player.Position) (int, error) {
	b, err := Breakdown(stat, position)
	if err != nil {
		return 0, err
	}
	return b.Points, nil
}

// Breakdown scores a stat line and labels every non-zero contribution.
// minutes_played only gates the appearance point.
func Breakdown(stat Stat, position player.Position) (PointsBreakdown, error) {
	if err := stat.Validate(); err != nil {
		return PointsBreakdown{}, err
	}
	w, err := WeightsFor(position)
	if err != nil {
		return PointsBreakdown{}, err
	}

	var items []BreakdownItem
	add := func(label string, points int) {
		if points != 0 {
			items = append(items, BreakdownItem{Label: label, Points: points})
		}
	}
	counted := func(label string, count, weight int) {
		if count > 0 {
			add(fmt.Sprintf("%s (%dx)", label, count), count*weight)
		}
	}

	if stat.MinutesPlayed > 0 {
		add("Appearance", w.Played)
	}
	counted("Goals", stat.Goals, w.Goal)
	counted("Penalties Scored", stat.PenaltiesScored, w.PenaltyScored)
	counted("Assists", stat.Assists, w.Assist)
	counted("Clean Sheet", stat.CleanSheets, w.CleanSheet)
	if bonus := (stat.Saves / SavesPerBonus) * w.SavePer3; bonus > 0 {
		add(fmt.Sprintf("Saves (%dx)", stat.Saves), bonus)
	}
	counted("Penalty Saves", stat.PenaltiesSaved, w.PenaltySaved)
	counted("Defensive Error", stat.DefensiveErrors, w.DefensiveError)
	counted("Own Goals", stat.OwnGoals, w.OwnGoal)
	counted("Penalty Missed", stat.PenaltiesMissed, w.PenaltyMissed)
	if stat.MVP {
		add("MVP Award", w.MVP)
	}
	counted("Nutmegs/Skills", stat.Nutmegs, w.Nutmeg)

	total := 0
	for _, item := range items {
		total += item.Points
	}

	return PointsBreakdown{
		Items:  items,
		Total:  total,
		Points: max(total, MinPlayerPoints),
	}, nil
}

// TeamPoints doubles the captain and subtracts the transfer penalty.
// A captain that is not among players simply scores no bonus.
func TeamPoints(players []PlayerScore, captainID string, transferPenalty int) TeamResult {
	result := TeamResult{
		Players:         make([]CountedScore, 0, len(players)),
		TransferPenalty: transferPenalty,
	}
	for _, p := range players {
		multiplier := 1
		if p.PlayerID == captainID {
			multiplier = CaptainMultiplier
		}
		counted := p.Points * multiplier
		result.Players = append(result.Players, CountedScore{
			PlayerID:   p.PlayerID,
			BasePoints: p.Points,
			Multiplier: multiplier,
			Counted:    counted,
		})
		result.GrossPoints += counted
	}
	result.Total = result.GrossPoints - transferPenalty
	return result
}

// TransferPenalty charges DefaultTransferCost per transfer beyond the free allowance.
func TransferPenalty(transfers, freeTransfers int) int {
	return TransferPenaltyWithCost(transfers, freeTransfers, DefaultTransferCost)
}

func TransferPenaltyWithCost(transfers, freeTransfers, cost int) int {
	if freeTransfers < 0 {
		freeTransfers = 0
	}
	extra := transfers - freeTransfers
	if extra <= 0 || cost <= 0 {
		return 0
	}
	return extra * cost
}
