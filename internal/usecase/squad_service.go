package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-five/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-five/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-five/internal/domain/matchstat"
	"github.com/riskibarqy/fantasy-five/internal/domain/player"
	"github.com/riskibarqy/fantasy-five/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-five/internal/domain/settings"
	idgen "github.com/riskibarqy/fantasy-five/internal/platform/id"
	"github.com/riskibarqy/fantasy-five/internal/platform/logging"
)

// SelectSquadInput is the incoming payload for saving a gameweek squad.
// GameweekID defaults to the active gameweek.
type SelectSquadInput struct {
	UserID     string
	Username   string
	GameweekID string
	PlayerIDs  []string
	CaptainID  string
	TeamName   string
}

type TeamView struct {
	Team      fantasy.Team
	Gameweek  *gameweek.Gameweek
	Selection *fantasy.Selection
	Players   []player.Player
}

type SquadPlayerPoints struct {
	Player     player.Player
	Points     int
	HasStats   bool
	IsCaptain  bool
	Multiplier int
	Counted    int
}

// GameweekTeamView is a read-only squad for one gameweek. Fallback is set
// when no selection was stored and the last earlier lineup is shown instead.
type GameweekTeamView struct {
	Team        fantasy.Team
	Gameweek    gameweek.Gameweek
	Selection   fantasy.Selection
	Players     []SquadPlayerPoints
	GrossPoints int
	Points      int
	Fallback    bool
}

type SquadService struct {
	settingsRepo settings.Repository
	gameweekRepo gameweek.Repository
	playerRepo   player.Repository
	fantasyRepo  fantasy.Repository
	statRepo     matchstat.Repository
	rules        fantasy.Rules
	idGen        idgen.Generator
	logger       *logging.Logger
	now          func() time.Time
}

func NewSquadService(
	settingsRepo settings.Repository,
	gameweekRepo gameweek.Repository,
	playerRepo player.Repository,
	fantasyRepo fantasy.Repository,
	statRepo matchstat.Repository,
	rules fantasy.Rules,
	idGen idgen.Generator,
	logger *logging.Logger,
) *SquadService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SquadService{
		settingsRepo: settingsRepo,
		gameweekRepo: gameweekRepo,
		playerRepo:   playerRepo,
		fantasyRepo:  fantasyRepo,
		statRepo:     statRepo,
		rules:        rules,
		idGen:        idGen,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *SquadService) SelectSquad(ctx context.Context, input SelectSquadInput) (TeamView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.SelectSquad")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.CaptainID = strings.TrimSpace(input.CaptainID)
	input.TeamName = strings.TrimSpace(input.TeamName)
	if input.UserID == "" {
		return TeamView{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.CaptainID == "" {
		return TeamView{}, fmt.Errorf("%w: captain id is required", ErrInvalidInput)
	}

	cfg, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return TeamView{}, fmt.Errorf("get settings: %w", err)
	}
	if !cfg.AllowTransfers {
		return TeamView{}, fmt.Errorf("%w: transfers are currently disabled", ErrForbidden)
	}

	gw, err := s.resolveGameweek(ctx, input.GameweekID)
	if err != nil {
		return TeamView{}, err
	}
	now := s.now().UTC()
	if !gw.AcceptsSquadEdits(now) {
		if gw.IsActive() {
			return TeamView{}, fmt.Errorf("%w: deadline for gameweek %d has passed", ErrForbidden, gw.Number)
		}
		return TeamView{}, fmt.Errorf("%w: gameweek %d is not open for selection", ErrForbidden, gw.Number)
	}

	playerIDs, err := cleanPlayerIDs(input.PlayerIDs)
	if err != nil {
		return TeamView{}, err
	}
	byID, err := loadPlayersByID(ctx, s.playerRepo, playerIDs)
	if err != nil {
		return TeamView{}, err
	}

	players := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		item := byID[id]
		if !item.IsActive {
			return TeamView{}, fmt.Errorf("%w: player %s is not available", ErrInvalidSquad, id)
		}
		players = append(players, item)
	}

	cost, err := fantasy.ValidateSelection(fantasy.PicksFromPlayers(players), input.CaptainID, s.rules)
	if err != nil {
		return TeamView{}, fmt.Errorf("%w: %w", ErrInvalidSquad, err)
	}

	team, err := s.ensureTeam(ctx, input, now)
	if err != nil {
		return TeamView{}, err
	}

	baseline, hasBaseline, err := s.fantasyRepo.GetLatestSelectionBefore(ctx, team.ID, gw.Number)
	if err != nil {
		return TeamView{}, fmt.Errorf("get previous selection: %w", err)
	}
	transfers := 0
	if hasBaseline {
		transfers = fantasy.CountTransfers(baseline.PlayerIDs, playerIDs)
	}

	selection := fantasy.Selection{
		TeamID:          team.ID,
		GameweekID:      gw.ID,
		GameweekNumber:  gw.Number,
		PlayerIDs:       playerIDs,
		CaptainID:       input.CaptainID,
		TransfersMade:   transfers,
		TransferPenalty: s.rules.TransferPenalty(transfers, team.FreeTransfers),
		SquadCost:       cost,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	existing, exists, err := s.fantasyRepo.GetSelection(ctx, team.ID, gw.ID)
	if err != nil {
		return TeamView{}, fmt.Errorf("get selection: %w", err)
	}
	if exists {
		selection.CreatedAt = existing.CreatedAt
	}

	team.BudgetRemaining = s.rules.BudgetCap - cost
	team.UpdatedAt = now
	if err := s.fantasyRepo.SaveSquad(ctx, team, selection); err != nil {
		return TeamView{}, fmt.Errorf("save squad: %w", err)
	}

	s.logger.InfoContext(ctx, "squad selected",
		"user_id", input.UserID,
		"team_id", team.ID,
		"gameweek_id", gw.ID,
		"transfers", selection.TransfersMade,
		"transfer_penalty", selection.TransferPenalty,
	)

	return TeamView{Team: team, Gameweek: &gw, Selection: &selection, Players: players}, nil
}

func (s *SquadService) resolveGameweek(ctx context.Context, gameweekID string) (gameweek.Gameweek, error) {
	if strings.TrimSpace(gameweekID) != "" {
		return getGameweek(ctx, s.gameweekRepo, gameweekID)
	}
	gw, exists, err := s.gameweekRepo.GetActive(ctx)
	if err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("get active gameweek: %w", err)
	}
	if !exists {
		return gameweek.Gameweek{}, fmt.Errorf("%w: no active gameweek", ErrForbidden)
	}
	return gw, nil
}

// ensureTeam returns the user's team, creating it on first selection.
func (s *SquadService) ensureTeam(ctx context.Context, input SelectSquadInput, now time.Time) (fantasy.Team, error) {
	team, exists, err := s.fantasyRepo.GetTeamByUserID(ctx, input.UserID)
	if err != nil {
		return fantasy.Team{}, fmt.Errorf("get team by user: %w", err)
	}
	if exists {
		if input.TeamName != "" {
			team.Name = input.TeamName
		}
		return team, nil
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return fantasy.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	manager := strings.TrimSpace(input.Username)
	if manager == "" {
		manager = input.UserID
	}
	name := input.TeamName
	if name == "" {
		name = manager + " FC"
	}

	team = fantasy.Team{
		ID:              id,
		UserID:          input.UserID,
		Name:            name,
		ManagerName:     manager,
		BudgetRemaining: s.rules.BudgetCap,
		FreeTransfers:   s.rules.FreeTransfers,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := team.Validate(); err != nil {
		return fantasy.Team{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.fantasyRepo.CreateTeam(ctx, team); err != nil {
		if !errors.Is(err, fantasy.ErrTeamExists) {
			return fantasy.Team{}, fmt.Errorf("create team: %w", err)
		}
		// A concurrent first selection created the team; continue with it.
		existing, ok, getErr := s.fantasyRepo.GetTeamByUserID(ctx, input.UserID)
		if getErr != nil || !ok {
			return fantasy.Team{}, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		if input.TeamName != "" {
			existing.Name = input.TeamName
		}
		return existing, nil
	}

	s.logger.InfoContext(ctx, "fantasy team created", "user_id", input.UserID, "team_id", team.ID)
	return team, nil
}

// GetMyTeam returns the user's team with the squad for the active gameweek,
// or the latest stored squad when nothing is active.
func (s *SquadService) GetMyTeam(ctx context.Context, userID string) (TeamView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.GetMyTeam")
	defer span.End()

	team, err := s.teamByUser(ctx, userID)
	if err != nil {
		return TeamView{}, err
	}
	view := TeamView{Team: team}

	gw, hasActive, err := s.gameweekRepo.GetActive(ctx)
	if err != nil {
		return TeamView{}, fmt.Errorf("get active gameweek: %w", err)
	}

	var selection fantasy.Selection
	found := false
	if hasActive {
		view.Gameweek = &gw
		selection, found, err = s.fantasyRepo.GetSelection(ctx, team.ID, gw.ID)
		if err != nil {
			return TeamView{}, fmt.Errorf("get selection: %w", err)
		}
	}
	if !found {
		before := math.MaxInt32
		if hasActive {
			before = gw.Number
		}
		selection, found, err = s.fantasyRepo.GetLatestSelectionBefore(ctx, team.ID, before)
		if err != nil {
			return TeamView{}, fmt.Errorf("get previous selection: %w", err)
		}
	}
	if !found {
		return view, nil
	}

	view.Selection = &selection
	players, err := s.playerRepo.GetByIDs(ctx, selection.PlayerIDs)
	if err != nil {
		return TeamView{}, fmt.Errorf("get players by ids: %w", err)
	}
	view.Players = orderPlayers(players, selection.PlayerIDs)
	return view, nil
}

func (s *SquadService) GetTeamForGameweek(ctx context.Context, userID, gameweekID string) (GameweekTeamView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.GetTeamForGameweek")
	defer span.End()

	team, err := s.teamByUser(ctx, userID)
	if err != nil {
		return GameweekTeamView{}, err
	}
	return s.gameweekView(ctx, team, gameweekID)
}

func (s *SquadService) GetTeamForManager(ctx context.Context, managerName, gameweekID string) (GameweekTeamView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.GetTeamForManager")
	defer span.End()

	managerName = strings.TrimSpace(managerName)
	if managerName == "" {
		return GameweekTeamView{}, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	team, exists, err := s.fantasyRepo.GetTeamByManagerName(ctx, managerName)
	if err != nil {
		return GameweekTeamView{}, fmt.Errorf("get team by manager: %w", err)
	}
	if !exists {
		return GameweekTeamView{}, fmt.Errorf("%w: team for user=%s", ErrNotFound, managerName)
	}
	return s.gameweekView(ctx, team, gameweekID)
}

func (s *SquadService) gameweekView(ctx context.Context, team fantasy.Team, gameweekID string) (GameweekTeamView, error) {
	gw, err := getGameweek(ctx, s.gameweekRepo, gameweekID)
	if err != nil {
		return GameweekTeamView{}, err
	}

	view := GameweekTeamView{Team: team, Gameweek: gw}
	selection, exists, err := s.fantasyRepo.GetSelection(ctx, team.ID, gw.ID)
	if err != nil {
		return GameweekTeamView{}, fmt.Errorf("get selection: %w", err)
	}
	if !exists {
		prev, found, err := s.fantasyRepo.GetLatestSelectionBefore(ctx, team.ID, gw.Number)
		if err != nil {
			return GameweekTeamView{}, fmt.Errorf("get previous selection: %w", err)
		}
		if !found {
			return GameweekTeamView{}, fmt.Errorf("%w: no squad for team=%s gameweek=%d", ErrNotFound, team.ID, gw.Number)
		}
		selection = prev.RolledOver(gw.ID, gw.Number, prev.UpdatedAt)
		view.Fallback = true
	}
	view.Selection = selection

	entries, err := s.statRepo.ListByGameweek(ctx, gw.ID)
	if err != nil {
		return GameweekTeamView{}, fmt.Errorf("list match stats: %w", err)
	}
	pointsByPlayer := make(map[string]int, len(entries))
	for _, e := range entries {
		pointsByPlayer[e.PlayerID] = e.Points
	}

	players, err := s.playerRepo.GetByIDs(ctx, selection.PlayerIDs)
	if err != nil {
		return GameweekTeamView{}, fmt.Errorf("get players by ids: %w", err)
	}
	ordered := orderPlayers(players, selection.PlayerIDs)

	scores := make([]scoring.PlayerScore, 0, len(ordered))
	for _, p := range ordered {
		scores = append(scores, scoring.PlayerScore{PlayerID: p.ID, Points: pointsByPlayer[p.ID]})
	}
	result := scoring.TeamPoints(scores, selection.CaptainID, selection.TransferPenalty)

	view.Players = make([]SquadPlayerPoints, 0, len(ordered))
	for i, p := range ordered {
		_, hasStats := pointsByPlayer[p.ID]
		counted := result.Players[i]
		view.Players = append(view.Players, SquadPlayerPoints{
			Player:     p,
			Points:     counted.BasePoints,
			HasStats:   hasStats,
			IsCaptain:  p.ID == selection.CaptainID,
			Multiplier: counted.Multiplier,
			Counted:    counted.Counted,
		})
	}
	view.GrossPoints = result.GrossPoints
	view.Points = result.Total
	if selection.Scored {
		view.Points = selection.GameweekPoints
	}
	return view, nil
}

// History lists the team's scored gameweeks, newest first.
func (s *SquadService) History(ctx context.Context, userID string) ([]fantasy.Selection, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.History")
	defer span.End()

	team, err := s.teamByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.fantasyRepo.ListSelectionsByTeam(ctx, team.ID)
	if err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}

	out := make([]fantasy.Selection, 0, len(items))
	for _, item := range items {
		if item.Scored {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].GameweekNumber > out[j].GameweekNumber })
	return out, nil
}

func (s *SquadService) teamByUser(ctx context.Context, userID string) (fantasy.Team, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fantasy.Team{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	team, exists, err := s.fantasyRepo.GetTeamByUserID(ctx, userID)
	if err != nil {
		return fantasy.Team{}, fmt.Errorf("get team by user: %w", err)
	}
	if !exists {
		return fantasy.Team{}, fmt.Errorf("%w: user has no team yet", ErrNotFound)
	}
	return team, nil
}

// orderPlayers returns players in the order of ids, dropping unknown ids.
func orderPlayers(players []player.Player, ids []string) []player.Player {
	byID := make(map[string]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	out := make([]player.Player, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

func cleanPlayerIDs(playerIDs []string) ([]string, error) {
	cleaned := make([]string, 0, len(playerIDs))
	seen := make(map[string]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("%w: player id cannot be empty", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: %w: %s", ErrInvalidSquad, fantasy.ErrDuplicatePlayerInSquad, id)
		}
		seen[id] = struct{}{}
		cleaned = append(cleaned, id)
	}
	return cleaned, nil
}
