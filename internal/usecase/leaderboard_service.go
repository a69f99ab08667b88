package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/fantasy-five/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-five/internal/domain/minileague"
)

const (
	DefaultLeaderboardLimit = 50
	MaxLeaderboardLimit     = 200
)

type LeaderboardService struct {
	fantasyRepo  fantasy.Repository
	defaultLimit int
}

func NewLeaderboardService(fantasyRepo fantasy.Repository, defaultLimit int) *LeaderboardService {
	if defaultLimit <= 0 || defaultLimit > MaxLeaderboardLimit {
		defaultLimit = DefaultLeaderboardLimit
	}
	return &LeaderboardService{
		fantasyRepo:  fantasyRepo,
		defaultLimit: defaultLimit,
	}
}

// Global ranks every team. limit <= 0 uses the default and is capped at
// MaxLeaderboardLimit.
func (s *LeaderboardService) Global(ctx context.Context, limit int) ([]minileague.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Global")
	defer span.End()

	if limit <= 0 {
		limit = s.defaultLimit
	}
	limit = min(limit, MaxLeaderboardLimit)

	teams, err := s.fantasyRepo.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	standings := rankTeams(teams)
	if len(standings) > limit {
		standings = standings[:limit]
	}
	return standings, nil
}

// rankTeams orders by total points then team name and assigns competition
// ranks (1, 2, 2, 4).
func rankTeams(teams []fantasy.Team) []minileague.Standing {
	sorted := append([]fantasy.Team(nil), teams...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].TotalPoints != sorted[j].TotalPoints {
			return sorted[i].TotalPoints > sorted[j].TotalPoints
		}
		return sorted[i].Name < sorted[j].Name
	})

	out := make([]minileague.Standing, 0, len(sorted))
	for i, team := range sorted {
		rank := i + 1
		if i > 0 && team.TotalPoints == sorted[i-1].TotalPoints {
			rank = out[i-1].Rank
		}
		out = append(out, minileague.Standing{
			Rank:        rank,
			UserID:      team.UserID,
			TeamID:      team.ID,
			TeamName:    team.Name,
			ManagerName: team.ManagerName,
			TotalPoints: team.TotalPoints,
		})
	}
	return out
}
