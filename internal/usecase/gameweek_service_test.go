package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-five/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-five/internal/domain/gameweek"
)

func seedTeam(t *testing.T, f *gameFixture, team fantasy.Team, selections ...fantasy.Selection) {
	t.Helper()

	team.CreatedAt = f.now
	team.UpdatedAt = f.now
	if err := f.fantasy.CreateTeam(t.Context(), team); err != nil {
		t.Fatalf("create team %s: %v", team.ID, err)
	}
	for _, s := range selections {
		s.TeamID = team.ID
		if err := f.fantasy.UpsertSelection(t.Context(), s); err != nil {
			t.Fatalf("upsert selection %s/%s: %v", team.ID, s.GameweekID, err)
		}
	}
}

func TestGameweekService_CalculatePoints(t *testing.T) {
	t.Parallel()

	f := newGameFixture(t)
	service := f.gameweekService()

	seedTeam(t, f, fantasy.Team{ID: "team-a", UserID: "user-a", Name: "A FC", ManagerName: "a"}, fantasy.Selection{
		GameweekID:      "gw-1",
		GameweekNumber:  1,
		PlayerIDs:       defaultSquad,
		CaptainID:       "att-01",
		TransfersMade:   2,
		TransferPenalty: 4,
	})
	seedTeam(t, f, fantasy.Team{ID: "team-b", UserID: "user-b", Name: "B FC", ManagerName: "b"})
	f.setPoints(t, "gw-1", map[string]int{"gk-01": 8, "def-01": 2, "mid-02": -3, "att-01": 5, "att-02": 12})

	got, err := service.CalculatePoints(t.Context(), "gw-1")
	if err != nil {
		t.Fatalf("calculate points: %v", err)
	}
	if got.Gameweek.Status != gameweek.StatusFinished || got.Gameweek.CalculatedAt == nil {
		t.Fatalf("expected finished gameweek with calculated_at, got status=%s", got.Gameweek.Status)
	}
	if got.TeamCount != 2 || got.SuccessCount != 1 || got.SkippedCount != 1 || got.FailedCount != 0 {
		t.Fatalf("unexpected counters: %+v", got)
	}

	row := got.Teams[0]
	if row.TeamID != "team-a" || row.Status != "scored" {
		t.Fatalf("unexpected first row: %+v", row)
	}
	// 8 + 2 + 0 - 3 + 5*2
	if row.GrossPoints != 17 || row.TransferPenalty != 4 || row.Points != 13 {
		t.Fatalf("unexpected team score: gross=%d penalty=%d points=%d", row.GrossPoints, row.TransferPenalty, row.Points)
	}
	if got.Teams[1].Status != "skipped" {
		t.Fatalf("expected team without squad to be skipped, got %s", got.Teams[1].Status)
	}

	team, _, err := f.fantasy.GetTeamByID(t.Context(), "team-a")
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if team.TotalPoints != 13 {
		t.Fatalf("unexpected team total: got=%d want=13", team.TotalPoints)
	}

	again, err := service.CalculatePoints(t.Context(), "gw-1")
	if err != nil {
		t.Fatalf("recalculate points: %v", err)
	}
	if again.Teams[0].Points != 13 {
		t.Fatalf("recalculation changed points: got=%d want=13", again.Teams[0].Points)
	}
	team, _, _ = f.fantasy.GetTeamByID(t.Context(), "team-a")
	if team.TotalPoints != 13 {
		t.Fatalf("recalculation double counted: got=%d want=13", team.TotalPoints)
	}
}

func TestGameweekService_CalculatePoints_ScoresRolledOverSquad(t *testing.T) {
	t.Parallel()

	f := newGameFixture(t)
	service := f.gameweekService()

	seedTeam(t, f, fantasy.Team{ID: "team-a", UserID: "user-a", Name: "A FC", ManagerName: "a"}, fantasy.Selection{
		GameweekID:     "gw-1",
		GameweekNumber: 1,
		PlayerIDs:      defaultSquad,
		CaptainID:      "gk-01",
		Scored:         true,
		GameweekPoints: 7,
	})
	if _, err := service.CalculatePoints(t.Context(), "gw-1"); err != nil {
		t.Fatalf("calculate gw-1: %v", err)
	}
	if _, err := service.ActivateGameweek(t.Context(), "gw-2"); err != nil {
		t.Fatalf("activate gw-2: %v", err)
	}
	f.setPoints(t, "gw-2", map[string]int{"gk-01": 4})

	got, err := service.CalculatePoints(t.Context(), "gw-2")
	if err != nil {
		t.Fatalf("calculate gw-2: %v", err)
	}
	if got.Teams[0].Points != 8 || got.Teams[0].TransferPenalty != 0 {
		t.Fatalf("unexpected rolled-over score: %+v", got.Teams[0])
	}
}

func TestGameweekService_WorkersKeepTeamsApart(t *testing.T) {
	t.Parallel()

	f := newGameFixture(t)
	service := f.gameweekService()

	// base squad total is 12; the captain's points count twice
	wantPoints := map[string]int{"gk-01": 20, "def-01": 14, "mid-01": 12, "mid-02": 9, "att-01": 17}
	for i, captain := range defaultSquad {
		id := string(rune('a' + i))
		seedTeam(t, f, fantasy.Team{ID: "team-" + id, UserID: "user-" + id, Name: id + " FC", ManagerName: id}, fantasy.Selection{
			GameweekID:     "gw-1",
			GameweekNumber: 1,
			PlayerIDs:      defaultSquad,
			CaptainID:      captain,
		})
	}
	f.setPoints(t, "gw-1", map[string]int{"gk-01": 8, "def-01": 2, "mid-02": -3, "att-01": 5})

	got, err := service.CalculatePoints(t.Context(), "gw-1")
	if err != nil {
		t.Fatalf("calculate points: %v", err)
	}
	if got.SuccessCount != len(defaultSquad) {
		t.Fatalf("unexpected success count: got=%d want=%d", got.SuccessCount, len(defaultSquad))
	}
	for i, captain := range defaultSquad {
		teamID := "team-" + string(rune('a'+i))
		team, _, err := f.fantasy.GetTeamByID(t.Context(), teamID)
		if err != nil {
			t.Fatalf("get team %s: %v", teamID, err)
		}
		if team.TotalPoints != wantPoints[captain] {
			t.Fatalf("unexpected total for %s: got=%d want=%d", teamID, team.TotalPoints, wantPoints[captain])
		}
	}

	activated, err := service.ActivateGameweek(t.Context(), "gw-2")
	if err != nil {
		t.Fatalf("activate gw-2: %v", err)
	}
	if activated.RolledOver != len(defaultSquad) {
		t.Fatalf("unexpected rolled over count: got=%d want=%d", activated.RolledOver, len(defaultSquad))
	}
	for i, captain := range defaultSquad {
		teamID := "team-" + string(rune('a'+i))
		clone, exists, err := f.fantasy.GetSelection(t.Context(), teamID, "gw-2")
		if err != nil || !exists {
			t.Fatalf("expected clone for %s, exists=%v err=%v", teamID, exists, err)
		}
		if clone.CaptainID != captain {
			t.Fatalf("unexpected captain for %s: got=%s want=%s", teamID, clone.CaptainID, captain)
		}
	}
}

func TestGameweekService_CalculatePoints_UpcomingGameweek(t *testing.T) {
	t.Parallel()

	service := newGameFixture(t).gameweekService()

	_, err := service.CalculatePoints(t.Context(), "gw-2")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestGameweekService_ActivateGameweek(t *testing.T) {
	t.Parallel()

	t.Run("rolls squads forward", func(t *testing.T) {
		t.Parallel()

		f := newGameFixture(t)
		service := f.gameweekService()
		seedTeam(t, f, fantasy.Team{ID: "team-a", UserID: "user-a", Name: "A FC", ManagerName: "a"}, fantasy.Selection{
			GameweekID:      "gw-1",
			GameweekNumber:  1,
			PlayerIDs:       defaultSquad,
			CaptainID:       "att-01",
			TransfersMade:   3,
			TransferPenalty: 8,
		})
		seedTeam(t, f, fantasy.Team{ID: "team-b", UserID: "user-b", Name: "B FC", ManagerName: "b"})

		if _, err := service.CalculatePoints(t.Context(), "gw-1"); err != nil {
			t.Fatalf("calculate gw-1: %v", err)
		}
		got, err := service.ActivateGameweek(t.Context(), "gw-2")
		if err != nil {
			t.Fatalf("activate gw-2: %v", err)
		}
		if got.RolledOver != 1 {
			t.Fatalf("unexpected rolled over count: got=%d want=1", got.RolledOver)
		}
		if got.Gameweek.Status != gameweek.StatusActive || got.Gameweek.ActivatedAt == nil {
			t.Fatalf("expected active gameweek, got %+v", got.Gameweek)
		}

		clone, exists, err := f.fantasy.GetSelection(t.Context(), "team-a", "gw-2")
		if err != nil || !exists {
			t.Fatalf("expected cloned selection, exists=%v err=%v", exists, err)
		}
		if clone.CaptainID != "att-01" || len(clone.PlayerIDs) != len(defaultSquad) {
			t.Fatalf("unexpected clone: %+v", clone)
		}
		if clone.TransfersMade != 0 || clone.TransferPenalty != 0 || clone.Scored {
			t.Fatalf("clone must start clean: %+v", clone)
		}
	})

	t.Run("another gameweek active", func(t *testing.T) {
		t.Parallel()

		service := newGameFixture(t).gameweekService()

		_, err := service.ActivateGameweek(t.Context(), "gw-2")
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
		if !errors.Is(err, gameweek.ErrAnotherActive) {
			t.Fatalf("expected ErrAnotherActive, got %v", err)
		}
	})

	t.Run("finished gameweek", func(t *testing.T) {
		t.Parallel()

		service := newGameFixture(t).gameweekService()
		if _, err := service.CalculatePoints(t.Context(), "gw-1"); err != nil {
			t.Fatalf("calculate gw-1: %v", err)
		}

		_, err := service.ActivateGameweek(t.Context(), "gw-1")
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("missing gameweek", func(t *testing.T) {
		t.Parallel()

		service := newGameFixture(t).gameweekService()

		_, err := service.ActivateGameweek(t.Context(), "gw-9")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestGameweekService_CreateGameweek(t *testing.T) {
	t.Parallel()

	f := newGameFixture(t)
	service := f.gameweekService()
	deadline := f.now.Add(30 * 24 * time.Hour)

	created, err := service.CreateGameweek(t.Context(), CreateGameweekInput{Number: 4, Deadline: deadline})
	if err != nil {
		t.Fatalf("create gameweek: %v", err)
	}
	if created.ID != "gw-001" || created.Name != "Gameweek 4" || created.Status != gameweek.StatusUpcoming {
		t.Fatalf("unexpected gameweek: %+v", created)
	}

	_, err = service.CreateGameweek(t.Context(), CreateGameweekInput{Number: 1, Deadline: deadline})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	items, err := service.ListGameweeks(t.Context())
	if err != nil {
		t.Fatalf("list gameweeks: %v", err)
	}
	if len(items) != 4 || items[3].Number != 4 {
		t.Fatalf("unexpected gameweek list: %+v", items)
	}
}

func TestGameweekService_OpenVoting(t *testing.T) {
	t.Parallel()

	f := newGameFixture(t)
	service := f.gameweekService()

	got, err := service.OpenVoting(t.Context(), "gw-1")
	if err != nil {
		t.Fatalf("open voting: %v", err)
	}
	if !got.VotingOpen {
		t.Fatalf("expected voting open")
	}

	_, err = service.OpenVoting(t.Context(), "gw-1")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on reopen, got %v", err)
	}

	_, err = service.OpenVoting(t.Context(), "gw-2")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for upcoming gameweek, got %v", err)
	}

	active, err := service.GetActiveGameweek(t.Context())
	if err != nil {
		t.Fatalf("get active gameweek: %v", err)
	}
	if active.ID != "gw-1" {
		t.Fatalf("unexpected active gameweek: got=%s want=gw-1", active.ID)
	}
}
