package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-five/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-five/internal/domain/matchstat"
	"github.com/riskibarqy/fantasy-five/internal/domain/player"
	"github.com/riskibarqy/fantasy-five/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-five/internal/platform/logging"
)

type SubmitMatchStatInput struct {
	GameweekID string
	PlayerID   string
	Stat       scoring.Stat
	// Force allows overwriting an entry of a finished gameweek.
	Force bool
}

type GameweekStatLine struct {
	Entry  matchstat.Entry
	Player player.Player
}

type PlayerBreakdown struct {
	Entry     matchstat.Entry
	Player    player.Player
	Breakdown scoring.PointsBreakdown
}

type MatchStatService struct {
	gameweekRepo gameweek.Repository
	playerRepo   player.Repository
	statRepo     matchstat.Repository
	logger       *logging.Logger
	now          func() time.Time
}

func NewMatchStatService(
	gameweekRepo gameweek.Repository,
	playerRepo player.Repository,
	statRepo matchstat.Repository,
	logger *logging.Logger,
) *MatchStatService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchStatService{
		gameweekRepo: gameweekRepo,
		playerRepo:   playerRepo,
		statRepo:     statRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// SubmitMatchStat scores and stores one stat line, then refreshes the
// player's season total from all stored entries.
func (s *MatchStatService) SubmitMatchStat(ctx context.Context, input SubmitMatchStatInput) (matchstat.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchStatService.SubmitMatchStat")
	defer span.End()

	gw, err := getGameweek(ctx, s.gameweekRepo, input.GameweekID)
	if err != nil {
		return matchstat.Entry{}, err
	}
	if gw.IsFinished() && !input.Force {
		return matchstat.Entry{}, fmt.Errorf("%w: gameweek %d is finished, resubmit with force to recalculate", ErrInvalidTransition, gw.Number)
	}

	item, err := getPlayer(ctx, s.playerRepo, input.PlayerID)
	if err != nil {
		return matchstat.Entry{}, err
	}

	breakdown, err := scoring.Breakdown(input.Stat, item.Position)
	if err != nil {
		return matchstat.Entry{}, fmt.Errorf("%w: %w", ErrInvalidStat, err)
	}

	now := s.now().UTC()
	entry := matchstat.Entry{
		GameweekID: gw.ID,
		PlayerID:   item.ID,
		Stat:       input.Stat,
		Points:     breakdown.Points,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	existing, exists, err := s.statRepo.Get(ctx, gw.ID, item.ID)
	if err != nil {
		return matchstat.Entry{}, fmt.Errorf("get match stat: %w", err)
	}
	if exists {
		entry.CreatedAt = existing.CreatedAt
	}

	if err := s.statRepo.Upsert(ctx, entry); err != nil {
		return matchstat.Entry{}, fmt.Errorf("upsert match stat: %w", err)
	}
	if _, err := s.RefreshPlayerTotal(ctx, item.ID); err != nil {
		return matchstat.Entry{}, err
	}

	s.logger.InfoContext(ctx, "match stat submitted",
		"gameweek_id", gw.ID,
		"player_id", item.ID,
		"points", entry.Points,
		"overwrite", exists,
	)

	return entry, nil
}

// RefreshPlayerTotal sets total_points to the sum of the player's entries.
func (s *MatchStatService) RefreshPlayerTotal(ctx context.Context, playerID string) (int, error) {
	total, err := s.statRepo.SumPointsByPlayer(ctx, playerID)
	if err != nil {
		return 0, fmt.Errorf("sum player points: %w", err)
	}
	if err := s.playerRepo.UpdateTotalPoints(ctx, playerID, total); err != nil {
		return 0, fmt.Errorf("update player total points: %w", err)
	}
	return total, nil
}

func (s *MatchStatService) ListGameweekStats(ctx context.Context, gameweekID string) ([]GameweekStatLine, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchStatService.ListGameweekStats")
	defer span.End()

	gw, err := getGameweek(ctx, s.gameweekRepo, gameweekID)
	if err != nil {
		return nil, err
	}

	entries, err := s.statRepo.ListByGameweek(ctx, gw.ID)
	if err != nil {
		return nil, fmt.Errorf("list match stats: %w", err)
	}
	if len(entries) == 0 {
		return []GameweekStatLine{}, nil
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.PlayerID)
	}
	players, err := s.playerRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get players by ids: %w", err)
	}
	byID := make(map[string]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	out := make([]GameweekStatLine, 0, len(entries))
	for _, e := range entries {
		out = append(out, GameweekStatLine{Entry: e, Player: byID[e.PlayerID]})
	}
	return out, nil
}

// GetPointsBreakdown explains a stored entry using the current scoring table.
func (s *MatchStatService) GetPointsBreakdown(ctx context.Context, gameweekID, playerID string) (PlayerBreakdown, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchStatService.GetPointsBreakdown")
	defer span.End()

	gameweekID = strings.TrimSpace(gameweekID)
	playerID = strings.TrimSpace(playerID)
	if gameweekID == "" || playerID == "" {
		return PlayerBreakdown{}, fmt.Errorf("%w: gameweek id and player id are required", ErrInvalidInput)
	}

	entry, exists, err := s.statRepo.Get(ctx, gameweekID, playerID)
	if err != nil {
		return PlayerBreakdown{}, fmt.Errorf("get match stat: %w", err)
	}
	if !exists {
		return PlayerBreakdown{}, fmt.Errorf("%w: no stats for player=%s gameweek=%s", ErrNotFound, playerID, gameweekID)
	}

	item, err := getPlayer(ctx, s.playerRepo, playerID)
	if err != nil {
		return PlayerBreakdown{}, err
	}

	breakdown, err := scoring.Breakdown(entry.Stat, item.Position)
	if err != nil {
		return PlayerBreakdown{}, fmt.Errorf("%w: %w", ErrInvalidStat, err)
	}

	return PlayerBreakdown{Entry: entry, Player: item, Breakdown: breakdown}, nil
}

// PreviewPoints scores a stat line without storing it.
func (s *MatchStatService) PreviewPoints(stat scoring.Stat, position string) (scoring.PointsBreakdown, error) {
	pos, err := player.ParsePosition(position)
	if err != nil {
		return scoring.PointsBreakdown{}, fmt.Errorf("%w: %w", ErrInvalidStat, err)
	}
	breakdown, err := scoring.Breakdown(stat, pos)
	if err != nil {
		return scoring.PointsBreakdown{}, fmt.Errorf("%w: %w", ErrInvalidStat, err)
	}
	return breakdown, nil
}

func (s *MatchStatService) ScoringRules() scoring.RuleSet {
	return scoring.Rules()
}

// AwardMVP flags the player's entry as MVP and re-scores it. It reports false
// when the player has no entry for the gameweek.
func (s *MatchStatService) AwardMVP(ctx context.Context, gameweekID, playerID string) (matchstat.Entry, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchStatService.AwardMVP")
	defer span.End()

	entry, exists, err := s.statRepo.Get(ctx, gameweekID, playerID)
	if err != nil {
		return matchstat.Entry{}, false, fmt.Errorf("get match stat: %w", err)
	}
	if !exists {
		return matchstat.Entry{}, false, nil
	}
	if entry.Stat.MVP {
		return entry, true, nil
	}

	item, err := getPlayer(ctx, s.playerRepo, playerID)
	if err != nil {
		return matchstat.Entry{}, false, err
	}

	entry.Stat.MVP = true
	points, err := scoring.Calculate(entry.Stat, item.Position)
	if err != nil {
		return matchstat.Entry{}, false, fmt.Errorf("%w: %w", ErrInvalidStat, err)
	}
	entry.Points = points
	entry.UpdatedAt = s.now().UTC()

	if err := s.statRepo.Upsert(ctx, entry); err != nil {
		return matchstat.Entry{}, false, fmt.Errorf("upsert match stat: %w", err)
	}
	if _, err := s.RefreshPlayerTotal(ctx, playerID); err != nil {
		return matchstat.Entry{}, false, err
	}

	s.logger.InfoContext(ctx, "mvp awarded",
		"gameweek_id", gameweekID,
		"player_id", playerID,
		"points", entry.Points,
	)

	return entry, true, nil
}

func getGameweek(ctx context.Context, repo gameweek.Repository, gameweekID string) (gameweek.Gameweek, error) {
	gameweekID = strings.TrimSpace(gameweekID)
	if gameweekID == "" {
		return gameweek.Gameweek{}, fmt.Errorf("%w: gameweek id is required", ErrInvalidInput)
	}
	gw, exists, err := repo.GetByID(ctx, gameweekID)
	if err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("get gameweek: %w", err)
	}
	if !exists {
		return gameweek.Gameweek{}, fmt.Errorf("%w: gameweek=%s", ErrNotFound, gameweekID)
	}
	return gw, nil
}

func getPlayer(ctx context.Context, repo player.Repository, playerID string) (player.Player, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	item, exists, err := repo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by id: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	return item, nil
}
