package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fantasy-five/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-five/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-five/internal/domain/matchstat"
	"github.com/riskibarqy/fantasy-five/internal/domain/scoring"
	idgen "github.com/riskibarqy/fantasy-five/internal/platform/id"
	"github.com/riskibarqy/fantasy-five/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const (
	defaultScoringWorkers = 4

	teamScoreStatusScored  = "scored"
	teamScoreStatusSkipped = "skipped"
	teamScoreStatusFailed  = "failed"
)

type CreateGameweekInput struct {
	Number   int
	Name     string
	Deadline time.Time
}

type ActivateResult struct {
	Gameweek   gameweek.Gameweek
	RolledOver int
}

type TeamScoreResult struct {
	TeamID          string
	GrossPoints     int
	TransferPenalty int
	Points          int
	Status          string
	Message         string
}

type CalculateResult struct {
	Gameweek     gameweek.Gameweek
	WorkerCount  int
	TeamCount    int
	SuccessCount int
	SkippedCount int
	FailedCount  int
	Teams        []TeamScoreResult
}

type GameweekService struct {
	gameweekRepo gameweek.Repository
	fantasyRepo  fantasy.Repository
	statRepo     matchstat.Repository
	idGen        idgen.Generator
	workers      int
	logger       *logging.Logger
	now          func() time.Time
}

func NewGameweekService(
	gameweekRepo gameweek.Repository,
	fantasyRepo fantasy.Repository,
	statRepo matchstat.Repository,
	idGen idgen.Generator,
	workers int,
	logger *logging.Logger,
) *GameweekService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = defaultScoringWorkers
	}

	return &GameweekService{
		gameweekRepo: gameweekRepo,
		fantasyRepo:  fantasyRepo,
		statRepo:     statRepo,
		idGen:        idGen,
		workers:      workers,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *GameweekService) ListGameweeks(ctx context.Context) ([]gameweek.Gameweek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.ListGameweeks")
	defer span.End()

	items, err := s.gameweekRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list gameweeks: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Number < items[j].Number })
	return items, nil
}

func (s *GameweekService) GetGameweek(ctx context.Context, gameweekID string) (gameweek.Gameweek, error) {
	return getGameweek(ctx, s.gameweekRepo, gameweekID)
}

func (s *GameweekService) GetActiveGameweek(ctx context.Context) (gameweek.Gameweek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.GetActiveGameweek")
	defer span.End()

	gw, exists, err := s.gameweekRepo.GetActive(ctx)
	if err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("get active gameweek: %w", err)
	}
	if !exists {
		return gameweek.Gameweek{}, fmt.Errorf("%w: no active gameweek", ErrNotFound)
	}
	return gw, nil
}

func (s *GameweekService) CreateGameweek(ctx context.Context, input CreateGameweekInput) (gameweek.Gameweek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.CreateGameweek")
	defer span.End()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = fmt.Sprintf("Gameweek %d", input.Number)
	}

	existing, err := s.gameweekRepo.List(ctx)
	if err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("list gameweeks: %w", err)
	}
	for _, gw := range existing {
		if gw.Number == input.Number {
			return gameweek.Gameweek{}, fmt.Errorf("%w: %w: number=%d", ErrConflict, gameweek.ErrDuplicateNumber, input.Number)
		}
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("generate gameweek id: %w", err)
	}

	now := s.now().UTC()
	gw := gameweek.Gameweek{
		ID:        id,
		Number:    input.Number,
		Name:      name,
		Deadline:  input.Deadline.UTC(),
		Status:    gameweek.StatusUpcoming,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := gw.Validate(); err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.gameweekRepo.Create(ctx, gw); err != nil {
		return gameweek.Gameweek{}, gameweekWriteError("create gameweek", err)
	}

	s.logger.InfoContext(ctx, "gameweek created", "gameweek_id", gw.ID, "number", gw.Number)
	return gw, nil
}

// ActivateGameweek moves an upcoming gameweek to active. Squads are cloned
// into it first so a failed roll-over leaves the gameweek untouched.
func (s *GameweekService) ActivateGameweek(ctx context.Context, gameweekID string) (ActivateResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.ActivateGameweek")
	defer span.End()

	gw, err := getGameweek(ctx, s.gameweekRepo, gameweekID)
	if err != nil {
		return ActivateResult{}, err
	}

	active, hasActive, err := s.gameweekRepo.GetActive(ctx)
	if err != nil {
		return ActivateResult{}, fmt.Errorf("get active gameweek: %w", err)
	}
	activeID := ""
	if hasActive {
		activeID = active.ID
	}
	if err := gameweek.CanActivate(gw, activeID); err != nil {
		return ActivateResult{}, transitionError(err)
	}

	rolled, err := s.rollOverSquads(ctx, gw)
	if err != nil {
		return ActivateResult{}, err
	}

	now := s.now().UTC()
	gw.Status = gameweek.StatusActive
	gw.ActivatedAt = &now
	gw.UpdatedAt = now
	if err := s.gameweekRepo.Update(ctx, gw); err != nil {
		return ActivateResult{}, gameweekWriteError("update gameweek", err)
	}

	s.logger.InfoContext(ctx, "gameweek activated",
		"gameweek_id", gw.ID,
		"number", gw.Number,
		"rolled_over", rolled,
	)

	return ActivateResult{Gameweek: gw, RolledOver: rolled}, nil
}

// rollOverSquads copies each team's latest earlier selection into gw when
// the team has none there yet.
func (s *GameweekService) rollOverSquads(ctx context.Context, gw gameweek.Gameweek) (int, error) {
	teams, err := s.fantasyRepo.ListTeams(ctx)
	if err != nil {
		return 0, fmt.Errorf("list teams: %w", err)
	}

	now := s.now().UTC()
	var rolled atomic.Int32
	p := pool.New().WithContext(ctx).WithMaxGoroutines(s.workers)
	for _, team := range teams {
		p.Go(func(ctx context.Context) error {
			_, exists, err := s.fantasyRepo.GetSelection(ctx, team.ID, gw.ID)
			if err != nil {
				return fmt.Errorf("get selection team=%s: %w", team.ID, err)
			}
			if exists {
				return nil
			}

			prev, found, err := s.fantasyRepo.GetLatestSelectionBefore(ctx, team.ID, gw.Number)
			if err != nil {
				return fmt.Errorf("get previous selection team=%s: %w", team.ID, err)
			}
			if !found {
				return nil
			}

			if err := s.fantasyRepo.UpsertSelection(ctx, prev.RolledOver(gw.ID, gw.Number, now)); err != nil {
				return fmt.Errorf("clone selection team=%s: %w", team.ID, err)
			}
			rolled.Add(1)
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return 0, fmt.Errorf("roll over squads: %w", err)
	}

	return int(rolled.Load()), nil
}

// CalculatePoints finishes the gameweek and scores every team. Running it
// again on a finished gameweek overwrites the previous results.
func (s *GameweekService) CalculatePoints(ctx context.Context, gameweekID string) (CalculateResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.CalculatePoints")
	defer span.End()

	gw, err := getGameweek(ctx, s.gameweekRepo, gameweekID)
	if err != nil {
		return CalculateResult{}, err
	}
	if err := gameweek.CanCalculate(gw); err != nil {
		return CalculateResult{}, transitionError(err)
	}

	now := s.now().UTC()
	if !gw.IsFinished() {
		gw.Status = gameweek.StatusFinished
	}
	gw.CalculatedAt = &now
	gw.UpdatedAt = now
	if err := s.gameweekRepo.Update(ctx, gw); err != nil {
		return CalculateResult{}, gameweekWriteError("update gameweek", err)
	}

	entries, err := s.statRepo.ListByGameweek(ctx, gw.ID)
	if err != nil {
		return CalculateResult{}, fmt.Errorf("list match stats: %w", err)
	}
	pointsByPlayer := make(map[string]int, len(entries))
	for _, e := range entries {
		pointsByPlayer[e.PlayerID] = e.Points
	}

	teams, err := s.fantasyRepo.ListTeams(ctx)
	if err != nil {
		return CalculateResult{}, fmt.Errorf("list teams: %w", err)
	}

	workerCount := min(s.workers, max(len(teams), 1))
	result := CalculateResult{
		Gameweek:    gw,
		WorkerCount: workerCount,
		TeamCount:   len(teams),
		Teams:       make([]TeamScoreResult, 0, len(teams)),
	}
	if len(teams) == 0 {
		return result, nil
	}

	results := make(chan TeamScoreResult, len(teams))

	var successCount atomic.Int32
	var failedCount atomic.Int32
	var skippedCount atomic.Int32

	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return CalculateResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var workers sync.WaitGroup
	for _, team := range teams {
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			row := s.scoreTeam(ctx, gw, team, pointsByPlayer, now)
			switch row.Status {
			case teamScoreStatusScored:
				successCount.Add(1)
			case teamScoreStatusSkipped:
				skippedCount.Add(1)
			default:
				failedCount.Add(1)
			}
			results <- row
		}); err != nil {
			workers.Done()
			return CalculateResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Teams = append(result.Teams, row)
	}
	sort.SliceStable(result.Teams, func(i, j int) bool {
		return result.Teams[i].TeamID < result.Teams[j].TeamID
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	result.SkippedCount = int(skippedCount.Load())

	logFn := s.logger.InfoContext
	if result.FailedCount > 0 {
		logFn = s.logger.WarnContext
	}
	logFn(ctx, "gameweek points calculated",
		"gameweek_id", gw.ID,
		"number", gw.Number,
		"teams", result.TeamCount,
		"scored", result.SuccessCount,
		"skipped", result.SkippedCount,
		"failed", result.FailedCount,
	)

	return result, nil
}

func (s *GameweekService) scoreTeam(
	ctx context.Context,
	gw gameweek.Gameweek,
	team fantasy.Team,
	pointsByPlayer map[string]int,
	now time.Time,
) TeamScoreResult {
	row := TeamScoreResult{TeamID: team.ID}
	fail := func(err error) TeamScoreResult {
		row.Status = teamScoreStatusFailed
		row.Message = err.Error()
		s.logger.WarnContext(ctx, "score team failed", "team_id", team.ID, "gameweek_id", gw.ID, "error", err)
		return row
	}

	selection, exists, err := s.fantasyRepo.GetSelection(ctx, team.ID, gw.ID)
	if err != nil {
		return fail(fmt.Errorf("get selection: %w", err))
	}
	if !exists {
		prev, found, err := s.fantasyRepo.GetLatestSelectionBefore(ctx, team.ID, gw.Number)
		if err != nil {
			return fail(fmt.Errorf("get previous selection: %w", err))
		}
		if !found {
			row.Status = teamScoreStatusSkipped
			row.Message = "team has no squad"
			return row
		}
		selection = prev.RolledOver(gw.ID, gw.Number, now)
	}

	scores := make([]scoring.PlayerScore, 0, len(selection.PlayerIDs))
	for _, playerID := range selection.PlayerIDs {
		scores = append(scores, scoring.PlayerScore{PlayerID: playerID, Points: pointsByPlayer[playerID]})
	}
	teamResult := scoring.TeamPoints(scores, selection.CaptainID, selection.TransferPenalty)

	selection.GameweekPoints = teamResult.Total
	selection.Scored = true
	selection.UpdatedAt = now
	if err := s.fantasyRepo.UpsertSelection(ctx, selection); err != nil {
		return fail(fmt.Errorf("upsert selection: %w", err))
	}
	if _, err := s.fantasyRepo.RefreshTotalPoints(ctx, team.ID); err != nil {
		return fail(fmt.Errorf("refresh team total: %w", err))
	}

	row.GrossPoints = teamResult.GrossPoints
	row.TransferPenalty = teamResult.TransferPenalty
	row.Points = teamResult.Total
	row.Status = teamScoreStatusScored
	return row
}

func (s *GameweekService) OpenVoting(ctx context.Context, gameweekID string) (gameweek.Gameweek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.OpenVoting")
	defer span.End()

	gw, err := getGameweek(ctx, s.gameweekRepo, gameweekID)
	if err != nil {
		return gameweek.Gameweek{}, err
	}

	open, hasOpen, err := s.gameweekRepo.GetVotingOpen(ctx)
	if err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("get voting gameweek: %w", err)
	}
	openID := ""
	if hasOpen {
		openID = open.ID
	}
	if err := gameweek.CanOpenVoting(gw, openID); err != nil {
		return gameweek.Gameweek{}, transitionError(err)
	}

	gw.VotingOpen = true
	gw.UpdatedAt = s.now().UTC()
	if err := s.gameweekRepo.Update(ctx, gw); err != nil {
		return gameweek.Gameweek{}, gameweekWriteError("update gameweek", err)
	}

	s.logger.InfoContext(ctx, "voting opened", "gameweek_id", gw.ID, "number", gw.Number)
	return gw, nil
}

func transitionError(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidTransition, err)
}

// gameweekWriteError reports a lost race on a lifecycle uniqueness rule as a
// conflict. Other repository errors pass through wrapped.
func gameweekWriteError(op string, err error) error {
	switch {
	case errors.Is(err, gameweek.ErrAnotherActive),
		errors.Is(err, gameweek.ErrVotingOpenElse),
		errors.Is(err, gameweek.ErrDuplicateNumber):
		return fmt.Errorf("%w: %s: %w", ErrConflict, op, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
