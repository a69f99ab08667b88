package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/riskibarqy/fantasy-five/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-five/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-five/internal/domain/matchstat"
	"github.com/riskibarqy/fantasy-five/internal/domain/player"
	"github.com/riskibarqy/fantasy-five/internal/domain/settings"
	"github.com/riskibarqy/fantasy-five/internal/domain/user"
	"github.com/sourcegraph/conc/pool"
)

const dashboardTopN = 3

type OwnershipLine struct {
	Player  player.Player
	Owners  int
	Percent float64
}

type TopScorerLine struct {
	Player player.Player
	Points int
}

// DashboardHighlights is empty with Visible=false when stats are hidden.
type DashboardHighlights struct {
	Visible         bool
	CurrentGameweek *gameweek.Gameweek
	MostOwned       []OwnershipLine
	LastFinished    *gameweek.Gameweek
	TopScorers      []TopScorerLine
}

type DashboardService struct {
	settingsRepo settings.Repository
	gameweekRepo gameweek.Repository
	fantasyRepo  fantasy.Repository
	statRepo     matchstat.Repository
	playerRepo   player.Repository
}

func NewDashboardService(
	settingsRepo settings.Repository,
	gameweekRepo gameweek.Repository,
	fantasyRepo fantasy.Repository,
	statRepo matchstat.Repository,
	playerRepo player.Repository,
) *DashboardService {
	return &DashboardService{
		settingsRepo: settingsRepo,
		gameweekRepo: gameweekRepo,
		fantasyRepo:  fantasyRepo,
		statRepo:     statRepo,
		playerRepo:   playerRepo,
	}
}

func (s *DashboardService) Highlights(ctx context.Context, principal user.Principal) (DashboardHighlights, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Highlights")
	defer span.End()

	cfg, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return DashboardHighlights{}, fmt.Errorf("get settings: %w", err)
	}
	if !cfg.ShowDashboardStats && !principal.IsAdmin {
		return DashboardHighlights{Visible: false}, nil
	}

	out := DashboardHighlights{Visible: true}
	var owned []ownerCount
	var scorers []matchstat.Entry

	p := pool.New().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		gw, exists, err := s.gameweekRepo.GetActive(ctx)
		if err != nil {
			return fmt.Errorf("get active gameweek: %w", err)
		}
		if !exists {
			return nil
		}
		out.CurrentGameweek = &gw
		selections, err := s.fantasyRepo.ListSelectionsByGameweek(ctx, gw.ID)
		if err != nil {
			return fmt.Errorf("list selections: %w", err)
		}
		owned = mostOwned(selections, dashboardTopN)
		return nil
	})
	p.Go(func(ctx context.Context) error {
		gw, exists, err := s.gameweekRepo.GetLatestFinished(ctx)
		if err != nil {
			return fmt.Errorf("get latest finished gameweek: %w", err)
		}
		if !exists {
			return nil
		}
		out.LastFinished = &gw
		entries, err := s.statRepo.ListByGameweek(ctx, gw.ID)
		if err != nil {
			return fmt.Errorf("list match stats: %w", err)
		}
		scorers = topScorers(entries, dashboardTopN)
		return nil
	})
	if err := p.Wait(); err != nil {
		return DashboardHighlights{}, err
	}

	ids := make([]string, 0, len(owned)+len(scorers))
	for _, o := range owned {
		ids = append(ids, o.playerID)
	}
	for _, e := range scorers {
		ids = append(ids, e.PlayerID)
	}
	if len(ids) == 0 {
		return out, nil
	}
	players, err := s.playerRepo.GetByIDs(ctx, ids)
	if err != nil {
		return DashboardHighlights{}, fmt.Errorf("get players by ids: %w", err)
	}
	byID := make(map[string]player.Player, len(players))
	for _, item := range players {
		byID[item.ID] = item
	}

	for _, o := range owned {
		out.MostOwned = append(out.MostOwned, OwnershipLine{
			Player:  byID[o.playerID],
			Owners:  o.owners,
			Percent: o.percent,
		})
	}
	for _, e := range scorers {
		out.TopScorers = append(out.TopScorers, TopScorerLine{Player: byID[e.PlayerID], Points: e.Points})
	}
	return out, nil
}

type ownerCount struct {
	playerID string
	owners   int
	percent  float64
}

func mostOwned(selections []fantasy.Selection, n int) []ownerCount {
	if len(selections) == 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, sel := range selections {
		for _, id := range sel.PlayerIDs {
			counts[id]++
		}
	}

	out := make([]ownerCount, 0, len(counts))
	for id, c := range counts {
		pct := float64(c) * 100 / float64(len(selections))
		out = append(out, ownerCount{playerID: id, owners: c, percent: math.Round(pct*10) / 10})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].owners != out[j].owners {
			return out[i].owners > out[j].owners
		}
		return out[i].playerID < out[j].playerID
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func topScorers(entries []matchstat.Entry, n int) []matchstat.Entry {
	sorted := append([]matchstat.Entry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Points != sorted[j].Points {
			return sorted[i].Points > sorted[j].Points
		}
		return sorted[i].PlayerID < sorted[j].PlayerID
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
