package usecase

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-five/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-five/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-five/internal/domain/player"
	"github.com/riskibarqy/fantasy-five/internal/domain/settings"
	"github.com/riskibarqy/fantasy-five/internal/infrastructure/repository/memory"
	fantasymock "github.com/riskibarqy/fantasy-five/internal/mocks/domain/fantasy"
	gameweekmock "github.com/riskibarqy/fantasy-five/internal/mocks/domain/gameweek"
	matchstatmock "github.com/riskibarqy/fantasy-five/internal/mocks/domain/matchstat"
	playermock "github.com/riskibarqy/fantasy-five/internal/mocks/domain/player"
	settingsmock "github.com/riskibarqy/fantasy-five/internal/mocks/domain/settings"
	"github.com/riskibarqy/fantasy-five/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func squadPlayers(ids []string) []player.Player {
	out := make([]player.Player, 0, len(ids))
	for _, item := range memory.SeedPlayers() {
		if slices.Contains(ids, item.ID) {
			out = append(out, item)
		}
	}
	return out
}

func TestSquadService_SelectSquad_SaveFailsUsingMockery(t *testing.T) {
	t.Parallel()

	ctx, anyCtx := tracedContext()
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	settingsRepo := settingsmock.NewRepository(t)
	gameweekRepo := gameweekmock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	fantasyRepo := fantasymock.NewRepository(t)
	statRepo := matchstatmock.NewRepository(t)
	boom := errors.New("connection reset")

	service := NewSquadService(settingsRepo, gameweekRepo, playerRepo, fantasyRepo, statRepo,
		fantasy.DefaultRules(), staticIDGenerator{id: "unused"}, logging.NewNop())
	service.now = func() time.Time { return now }

	settingsRepo.On("Get", anyCtx).Return(settings.Default(), nil).Once()
	gameweekRepo.
		On("GetByID", anyCtx, "gw-1").
		Return(gameweek.Gameweek{ID: "gw-1", Number: 1, Status: gameweek.StatusActive, Deadline: now.Add(48 * time.Hour)}, true, nil).
		Once()
	playerRepo.On("GetByIDs", anyCtx, defaultSquad).Return(squadPlayers(defaultSquad), nil).Once()
	fantasyRepo.
		On("GetTeamByUserID", anyCtx, "user-1").
		Return(fantasy.Team{ID: "team-1", UserID: "user-1", Name: "Alice FC", FreeTransfers: 1}, true, nil).
		Once()
	fantasyRepo.On("GetLatestSelectionBefore", anyCtx, "team-1", 1).Return(fantasy.Selection{}, false, nil).Once()
	fantasyRepo.On("GetSelection", anyCtx, "team-1", "gw-1").Return(fantasy.Selection{}, false, nil).Once()
	fantasyRepo.
		On("SaveSquad", anyCtx,
			mock.MatchedBy(func(v fantasy.Team) bool { return v.ID == "team-1" && v.BudgetRemaining == 20 }),
			mock.MatchedBy(func(v fantasy.Selection) bool { return v.TeamID == "team-1" && v.CaptainID == "att-01" }),
		).
		Return(boom).
		Once()

	_, err := service.SelectSquad(ctx, SelectSquadInput{
		UserID:     "user-1",
		GameweekID: "gw-1",
		PlayerIDs:  defaultSquad,
		CaptainID:  "att-01",
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected save error, got %v", err)
	}
	fantasyRepo.AssertNotCalled(t, "UpsertSelection", mock.Anything, mock.Anything)
	fantasyRepo.AssertNotCalled(t, "UpdateTeam", mock.Anything, mock.Anything)
}
