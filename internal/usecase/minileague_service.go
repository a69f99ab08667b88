package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-five/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-five/internal/domain/minileague"
	idgen "github.com/riskibarqy/fantasy-five/internal/platform/id"
	"github.com/riskibarqy/fantasy-five/internal/platform/logging"
)

const joinCodeAttempts = 5

type MiniLeagueService struct {
	leagueRepo  minileague.Repository
	fantasyRepo fantasy.Repository
	idGen       idgen.Generator
	codeGen     idgen.CodeGenerator
	logger      *logging.Logger
	now         func() time.Time
}

func NewMiniLeagueService(
	leagueRepo minileague.Repository,
	fantasyRepo fantasy.Repository,
	idGen idgen.Generator,
	codeGen idgen.CodeGenerator,
	logger *logging.Logger,
) *MiniLeagueService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MiniLeagueService{
		leagueRepo:  leagueRepo,
		fantasyRepo: fantasyRepo,
		idGen:       idGen,
		codeGen:     codeGen,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateLeague creates a league and joins the creator to it.
func (s *MiniLeagueService) CreateLeague(ctx context.Context, userID, name string) (minileague.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MiniLeagueService.CreateLeague")
	defer span.End()

	userID = strings.TrimSpace(userID)
	name = strings.TrimSpace(name)
	if userID == "" {
		return minileague.League{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if name == "" {
		return minileague.League{}, fmt.Errorf("%w: league name is required", ErrInvalidInput)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return minileague.League{}, fmt.Errorf("generate league id: %w", err)
	}

	now := s.now().UTC()
	item := minileague.League{
		ID:        id,
		Name:      name,
		CreatedBy: userID,
		CreatedAt: now,
	}

	for attempt := 1; ; attempt++ {
		code, err := s.codeGen.NewCode(minileague.JoinCodeLength)
		if err != nil {
			return minileague.League{}, fmt.Errorf("generate join code: %w", err)
		}
		item.JoinCode = code
		if err := item.Validate(); err != nil {
			return minileague.League{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}

		err = s.leagueRepo.Create(ctx, item)
		if err == nil {
			break
		}
		if !errors.Is(err, minileague.ErrDuplicateCode) || attempt >= joinCodeAttempts {
			return minileague.League{}, fmt.Errorf("create mini league: %w", err)
		}
	}

	if err := s.leagueRepo.AddMember(ctx, minileague.Membership{LeagueID: item.ID, UserID: userID, JoinedAt: now}); err != nil {
		return minileague.League{}, fmt.Errorf("add creator to mini league: %w", err)
	}

	s.logger.InfoContext(ctx, "mini league created", "league_id", item.ID, "user_id", userID)
	return item, nil
}

func (s *MiniLeagueService) JoinLeague(ctx context.Context, userID, joinCode string) (minileague.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MiniLeagueService.JoinLeague")
	defer span.End()

	userID = strings.TrimSpace(userID)
	joinCode = minileague.NormalizeCode(joinCode)
	if userID == "" {
		return minileague.League{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if joinCode == "" {
		return minileague.League{}, fmt.Errorf("%w: join code is required", ErrInvalidInput)
	}

	item, exists, err := s.leagueRepo.GetByCode(ctx, joinCode)
	if err != nil {
		return minileague.League{}, fmt.Errorf("get mini league by code: %w", err)
	}
	if !exists {
		return minileague.League{}, fmt.Errorf("%w: no mini league with code %s", ErrNotFound, joinCode)
	}

	err = s.leagueRepo.AddMember(ctx, minileague.Membership{LeagueID: item.ID, UserID: userID, JoinedAt: s.now().UTC()})
	if errors.Is(err, minileague.ErrAlreadyMember) {
		return minileague.League{}, fmt.Errorf("%w: %w", ErrConflict, err)
	}
	if err != nil {
		return minileague.League{}, fmt.Errorf("join mini league: %w", err)
	}

	s.logger.InfoContext(ctx, "mini league joined", "league_id", item.ID, "user_id", userID)
	return item, nil
}

func (s *MiniLeagueService) ListMyLeagues(ctx context.Context, userID string) ([]minileague.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MiniLeagueService.ListMyLeagues")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	items, err := s.leagueRepo.ListByMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list mini leagues: %w", err)
	}
	return items, nil
}

// Standings is visible to members only. Members without a team score zero.
func (s *MiniLeagueService) Standings(ctx context.Context, userID, leagueID string) (minileague.League, []minileague.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MiniLeagueService.Standings")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return minileague.League{}, nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	item, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return minileague.League{}, nil, fmt.Errorf("get mini league: %w", err)
	}
	if !exists {
		return minileague.League{}, nil, fmt.Errorf("%w: mini league=%s", ErrNotFound, leagueID)
	}

	member, err := s.leagueRepo.IsMember(ctx, leagueID, userID)
	if err != nil {
		return minileague.League{}, nil, fmt.Errorf("check membership: %w", err)
	}
	if !member {
		return minileague.League{}, nil, fmt.Errorf("%w: not a member of this league", ErrForbidden)
	}

	memberIDs, err := s.leagueRepo.ListMemberIDs(ctx, leagueID)
	if err != nil {
		return minileague.League{}, nil, fmt.Errorf("list members: %w", err)
	}
	teams, err := s.fantasyRepo.ListTeamsByUserIDs(ctx, memberIDs)
	if err != nil {
		return minileague.League{}, nil, fmt.Errorf("list member teams: %w", err)
	}

	withTeam := make(map[string]struct{}, len(teams))
	for _, team := range teams {
		withTeam[team.UserID] = struct{}{}
	}
	for _, memberID := range memberIDs {
		if _, ok := withTeam[memberID]; !ok {
			teams = append(teams, fantasy.Team{UserID: memberID, ManagerName: memberID})
		}
	}

	return item, rankTeams(teams), nil
}
