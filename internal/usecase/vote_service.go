package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-five/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-five/internal/domain/matchstat"
	"github.com/riskibarqy/fantasy-five/internal/domain/player"
	"github.com/riskibarqy/fantasy-five/internal/domain/vote"
	idgen "github.com/riskibarqy/fantasy-five/internal/platform/id"
	"github.com/riskibarqy/fantasy-five/internal/platform/logging"
)

// MVPAwarder flags a player's stat entry as MVP and re-scores it.
type MVPAwarder interface {
	AwardMVP(ctx context.Context, gameweekID, playerID string) (matchstat.Entry, bool, error)
}

type SubmitVoteInput struct {
	UserID     string
	GameweekID string
	FirstID    string
	SecondID   string
	ThirdID    string
}

type VoteResultLine struct {
	vote.Result
	Player player.Player
}

type CloseVotingResult struct {
	Gameweek    gameweek.Gameweek
	Results     []VoteResultLine
	MVPPlayerID string
	Awarded     bool
}

type VoteService struct {
	gameweekRepo gameweek.Repository
	playerRepo   player.Repository
	voteRepo     vote.Repository
	awarder      MVPAwarder
	idGen        idgen.Generator
	logger       *logging.Logger
	now          func() time.Time
}

func NewVoteService(
	gameweekRepo gameweek.Repository,
	playerRepo player.Repository,
	voteRepo vote.Repository,
	awarder MVPAwarder,
	idGen idgen.Generator,
	logger *logging.Logger,
) *VoteService {
	if logger == nil {
		logger = logging.Default()
	}

	return &VoteService{
		gameweekRepo: gameweekRepo,
		playerRepo:   playerRepo,
		voteRepo:     voteRepo,
		awarder:      awarder,
		idGen:        idGen,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *VoteService) SubmitVote(ctx context.Context, input SubmitVoteInput) (vote.Vote, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VoteService.SubmitVote")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	if input.UserID == "" {
		return vote.Vote{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	gw, err := getGameweek(ctx, s.gameweekRepo, input.GameweekID)
	if err != nil {
		return vote.Vote{}, err
	}
	if !gw.VotingOpen {
		return vote.Vote{}, fmt.Errorf("%w: voting is closed for gameweek %d", ErrForbidden, gw.Number)
	}

	item := vote.Vote{
		GameweekID: gw.ID,
		UserID:     input.UserID,
		FirstID:    strings.TrimSpace(input.FirstID),
		SecondID:   strings.TrimSpace(input.SecondID),
		ThirdID:    strings.TrimSpace(input.ThirdID),
		CreatedAt:  s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return vote.Vote{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	picks := item.Picks()
	if _, err := loadPlayersByID(ctx, s.playerRepo, picks[:]); err != nil {
		return vote.Vote{}, err
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return vote.Vote{}, fmt.Errorf("generate vote id: %w", err)
	}
	item.ID = id

	err = s.voteRepo.Create(ctx, item)
	if errors.Is(err, vote.ErrAlreadyVoted) {
		return vote.Vote{}, fmt.Errorf("%w: %w", ErrConflict, err)
	}
	if err != nil {
		return vote.Vote{}, fmt.Errorf("create vote: %w", err)
	}

	s.logger.InfoContext(ctx, "vote submitted", "gameweek_id", gw.ID, "user_id", item.UserID)
	return item, nil
}

// MyVote returns the caller's ballot; the bool is false when they have not voted.
func (s *VoteService) MyVote(ctx context.Context, userID, gameweekID string) (vote.Vote, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VoteService.MyVote")
	defer span.End()

	gw, err := getGameweek(ctx, s.gameweekRepo, gameweekID)
	if err != nil {
		return vote.Vote{}, false, err
	}
	item, exists, err := s.voteRepo.GetByUser(ctx, gw.ID, strings.TrimSpace(userID))
	if err != nil {
		return vote.Vote{}, false, fmt.Errorf("get vote: %w", err)
	}
	return item, exists, nil
}

func (s *VoteService) Results(ctx context.Context, gameweekID string) ([]VoteResultLine, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VoteService.Results")
	defer span.End()

	gw, err := getGameweek(ctx, s.gameweekRepo, gameweekID)
	if err != nil {
		return nil, err
	}
	return s.tally(ctx, gw.ID)
}

func (s *VoteService) tally(ctx context.Context, gameweekID string) ([]VoteResultLine, error) {
	votes, err := s.voteRepo.ListByGameweek(ctx, gameweekID)
	if err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}
	results := vote.Tally(votes)
	if len(results) == 0 {
		return []VoteResultLine{}, nil
	}

	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.PlayerID)
	}
	players, err := s.playerRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get players by ids: %w", err)
	}
	byID := make(map[string]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	out := make([]VoteResultLine, 0, len(results))
	for _, r := range results {
		out = append(out, VoteResultLine{Result: r, Player: byID[r.PlayerID]})
	}
	return out, nil
}

// CloseVoting clears the voting flag and returns the final tally. With
// awardMVP the winner's stat entry gets the MVP bonus when it exists.
func (s *VoteService) CloseVoting(ctx context.Context, gameweekID string, awardMVP bool) (CloseVotingResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VoteService.CloseVoting")
	defer span.End()

	gw, err := getGameweek(ctx, s.gameweekRepo, gameweekID)
	if err != nil {
		return CloseVotingResult{}, err
	}
	if err := gameweek.CanCloseVoting(gw); err != nil {
		return CloseVotingResult{}, transitionError(err)
	}

	gw.VotingOpen = false
	gw.UpdatedAt = s.now().UTC()
	if err := s.gameweekRepo.Update(ctx, gw); err != nil {
		return CloseVotingResult{}, gameweekWriteError("update gameweek", err)
	}

	results, err := s.tally(ctx, gw.ID)
	if err != nil {
		return CloseVotingResult{}, err
	}
	out := CloseVotingResult{Gameweek: gw, Results: results}
	if len(results) > 0 {
		out.MVPPlayerID = results[0].PlayerID
	}

	if awardMVP && out.MVPPlayerID != "" && s.awarder != nil {
		_, awarded, err := s.awarder.AwardMVP(ctx, gw.ID, out.MVPPlayerID)
		if err != nil {
			return CloseVotingResult{}, fmt.Errorf("award mvp: %w", err)
		}
		out.Awarded = awarded
	}

	s.logger.InfoContext(ctx, "voting closed",
		"gameweek_id", gw.ID,
		"candidates", len(results),
		"mvp_player_id", out.MVPPlayerID,
		"awarded", out.Awarded,
	)

	return out, nil
}
