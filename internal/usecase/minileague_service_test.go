package usecase

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-five/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-five/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-five/internal/platform/logging"
)

type queuedCodeGenerator struct {
	mu    sync.Mutex
	codes []string
}

func (g *queuedCodeGenerator) NewCode(length int) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.codes) == 0 {
		return "", fmt.Errorf("no codes left")
	}
	code := g.codes[0]
	g.codes = g.codes[1:]
	if len(code) != length {
		return "", fmt.Errorf("code %q is not %d characters", code, length)
	}
	return code, nil
}

func newMiniLeagueFixture(t *testing.T, codes ...string) (*MiniLeagueService, *memory.FantasyRepository) {
	t.Helper()

	fantasyRepo := memory.NewFantasyRepository()
	service := NewMiniLeagueService(
		memory.NewMiniLeagueRepository(),
		fantasyRepo,
		&sequenceIDGenerator{prefix: "league"},
		&queuedCodeGenerator{codes: codes},
		logging.NewNop(),
	)
	service.now = func() time.Time { return time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC) }
	return service, fantasyRepo
}

func TestMiniLeagueService_CreateJoinAndStandings(t *testing.T) {
	t.Parallel()

	service, fantasyRepo := newMiniLeagueFixture(t, "KANTOR01")
	for _, team := range []fantasy.Team{
		{ID: "team-1", UserID: "user-1", Name: "Garuda FC", ManagerName: "alice", TotalPoints: 40},
		{ID: "team-2", UserID: "user-2", Name: "Elang FC", ManagerName: "bob", TotalPoints: 55},
		{ID: "team-3", UserID: "user-3", Name: "Outsider FC", ManagerName: "carol", TotalPoints: 90},
	} {
		if err := fantasyRepo.CreateTeam(t.Context(), team); err != nil {
			t.Fatalf("create team: %v", err)
		}
	}

	league, err := service.CreateLeague(t.Context(), "user-1", " Office League ")
	if err != nil {
		t.Fatalf("create league: %v", err)
	}
	if league.ID != "league-001" || league.Name != "Office League" || league.JoinCode != "KANTOR01" {
		t.Fatalf("unexpected league: %+v", league)
	}

	if _, err := service.JoinLeague(t.Context(), "user-2", " kantor01 "); err != nil {
		t.Fatalf("join league: %v", err)
	}
	if _, err := service.JoinLeague(t.Context(), "user-4", "KANTOR01"); err != nil {
		t.Fatalf("join league without team: %v", err)
	}

	_, err = service.JoinLeague(t.Context(), "user-2", "KANTOR01")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on rejoin, got %v", err)
	}

	_, standings, err := service.Standings(t.Context(), "user-1", league.ID)
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if len(standings) != 3 {
		t.Fatalf("unexpected standings size: got=%d want=3", len(standings))
	}
	if standings[0].UserID != "user-2" || standings[0].Rank != 1 {
		t.Fatalf("unexpected leader: %+v", standings[0])
	}
	if standings[2].UserID != "user-4" || standings[2].TotalPoints != 0 {
		t.Fatalf("member without team should score zero: %+v", standings[2])
	}

	_, _, err = service.Standings(t.Context(), "user-3", league.ID)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-member, got %v", err)
	}

	mine, err := service.ListMyLeagues(t.Context(), "user-2")
	if err != nil {
		t.Fatalf("list my leagues: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != league.ID {
		t.Fatalf("unexpected leagues: %+v", mine)
	}
}

func TestMiniLeagueService_CreateLeague_RetriesDuplicateCode(t *testing.T) {
	t.Parallel()

	service, _ := newMiniLeagueFixture(t, "AAAA1111", "AAAA1111", "BBBB2222")

	if _, err := service.CreateLeague(t.Context(), "user-1", "First"); err != nil {
		t.Fatalf("create first league: %v", err)
	}
	second, err := service.CreateLeague(t.Context(), "user-2", "Second")
	if err != nil {
		t.Fatalf("create second league: %v", err)
	}
	if second.JoinCode != "BBBB2222" {
		t.Fatalf("unexpected join code: got=%s want=BBBB2222", second.JoinCode)
	}
}

func TestMiniLeagueService_JoinLeague_UnknownCode(t *testing.T) {
	t.Parallel()

	service, _ := newMiniLeagueFixture(t)

	_, err := service.JoinLeague(t.Context(), "user-1", "NOPE0000")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
