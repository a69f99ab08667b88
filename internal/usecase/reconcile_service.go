package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-five/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-five/internal/domain/matchstat"
	"github.com/riskibarqy/fantasy-five/internal/domain/player"
	"github.com/riskibarqy/fantasy-five/internal/platform/logging"
)

type ReconcileResult struct {
	PlayersChecked int
	PlayersFixed   int
	TeamsChecked   int
	TeamsFixed     int
	Duration       time.Duration
}

// ReconcileService rebuilds cached season totals from stored gameweek data.
type ReconcileService struct {
	playerRepo  player.Repository
	statRepo    matchstat.Repository
	fantasyRepo fantasy.Repository
	logger      *logging.Logger
}

func NewReconcileService(
	playerRepo player.Repository,
	statRepo matchstat.Repository,
	fantasyRepo fantasy.Repository,
	logger *logging.Logger,
) *ReconcileService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ReconcileService{
		playerRepo:  playerRepo,
		statRepo:    statRepo,
		fantasyRepo: fantasyRepo,
		logger:      logger,
	}
}

func (s *ReconcileService) ReconcileTotals(ctx context.Context) (ReconcileResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconcileService.ReconcileTotals")
	defer span.End()

	start := time.Now()
	var result ReconcileResult

	totals, err := s.statRepo.TotalsByPlayer(ctx)
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("sum player points: %w", err)
	}
	players, err := s.playerRepo.List(ctx, player.Filter{IncludeInactive: true})
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("list players: %w", err)
	}
	for _, item := range players {
		result.PlayersChecked++
		want := totals[item.ID]
		if item.TotalPoints == want {
			continue
		}
		if err := s.playerRepo.UpdateTotalPoints(ctx, item.ID, want); err != nil {
			return ReconcileResult{}, fmt.Errorf("update player total points: %w", err)
		}
		result.PlayersFixed++
	}

	teams, err := s.fantasyRepo.ListTeams(ctx)
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("list teams: %w", err)
	}
	for _, team := range teams {
		result.TeamsChecked++
		total, err := s.fantasyRepo.RefreshTotalPoints(ctx, team.ID)
		if err != nil {
			return ReconcileResult{}, fmt.Errorf("refresh team total: %w", err)
		}
		if total != team.TotalPoints {
			result.TeamsFixed++
		}
	}

	result.Duration = time.Since(start)
	s.logger.InfoContext(ctx, "totals reconciled",
		"players_checked", result.PlayersChecked,
		"players_fixed", result.PlayersFixed,
		"teams_checked", result.TeamsChecked,
		"teams_fixed", result.TeamsFixed,
		"duration_ms", result.Duration.Milliseconds(),
	)
	return result, nil
}
