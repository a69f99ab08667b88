package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-five/internal/domain/player"
	"github.com/riskibarqy/fantasy-five/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-five/internal/platform/logging"
)

func newPlayerService(t *testing.T) *PlayerService {
	t.Helper()

	service := NewPlayerService(
		memory.NewPlayerRepository(memory.SeedPlayers()),
		staticIDGenerator{id: "player-001"},
		logging.NewNop(),
	)
	service.now = func() time.Time { return time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC) }
	return service
}

func TestPlayerService_ListPlayers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   ListPlayersInput
		wantIDs []string
	}{
		{
			name:    "by position",
			input:   ListPlayersInput{Position: "gk"},
			wantIDs: []string{"gk-01", "gk-02"},
		},
		{
			name:    "fuzzy search",
			input:   ListPlayersInput{Search: "klok"},
			wantIDs: []string{"mid-02"},
		},
		{
			name:    "search ignores case",
			input:   ListPlayersInput{Search: "SILVA"},
			wantIDs: []string{"att-02"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := newPlayerService(t).ListPlayers(t.Context(), tc.input)
			if err != nil {
				t.Fatalf("list players: %v", err)
			}
			if len(got) != len(tc.wantIDs) {
				t.Fatalf("unexpected player count: got=%d want=%d", len(got), len(tc.wantIDs))
			}
			for i, id := range tc.wantIDs {
				if got[i].ID != id {
					t.Fatalf("unexpected player at %d: got=%s want=%s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestPlayerService_ListPlayers_InvalidPosition(t *testing.T) {
	t.Parallel()

	_, err := newPlayerService(t).ListPlayers(t.Context(), ListPlayersInput{Position: "striker"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPlayerService_CreatePlayer(t *testing.T) {
	t.Parallel()

	service := newPlayerService(t)

	created, err := service.CreatePlayer(t.Context(), CreatePlayerInput{Name: " Witan Sulaeman ", Position: "mid", TeamName: "Persija Jakarta"})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	if created.ID != "player-001" || created.Name != "Witan Sulaeman" {
		t.Fatalf("unexpected player: %+v", created)
	}
	if created.Position != player.PositionMidfielder || created.Price != player.DefaultPrice || !created.IsActive {
		t.Fatalf("unexpected defaults: position=%s price=%d active=%v", created.Position, created.Price, created.IsActive)
	}

	zero := int64(0)
	_, err = service.CreatePlayer(t.Context(), CreatePlayerInput{Name: "Free Agent", Position: "ATT", Price: &zero})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero price, got %v", err)
	}

	_, err = service.CreatePlayer(t.Context(), CreatePlayerInput{Name: "Coach", Position: "manager"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad position, got %v", err)
	}
}

func TestPlayerService_UpdateAndDeactivate(t *testing.T) {
	t.Parallel()

	service := newPlayerService(t)
	price := int64(110)

	updated, err := service.UpdatePlayer(t.Context(), UpdatePlayerInput{PlayerID: "att-01", Price: &price})
	if err != nil {
		t.Fatalf("update player: %v", err)
	}
	if updated.Price != 110 || updated.Name != "Gustavo Almeida" {
		t.Fatalf("unexpected update: %+v", updated)
	}

	if _, err := service.DeactivatePlayer(t.Context(), "att-01"); err != nil {
		t.Fatalf("deactivate player: %v", err)
	}

	active, err := service.ListPlayers(t.Context(), ListPlayersInput{Position: "ATT"})
	if err != nil {
		t.Fatalf("list active attackers: %v", err)
	}
	for _, item := range active {
		if item.ID == "att-01" {
			t.Fatalf("inactive player must be hidden from the default list")
		}
	}

	all, err := service.ListPlayers(t.Context(), ListPlayersInput{Position: "ATT", IncludeInactive: true})
	if err != nil {
		t.Fatalf("list all attackers: %v", err)
	}
	if len(all) != len(active)+1 {
		t.Fatalf("unexpected attacker count: all=%d active=%d", len(all), len(active))
	}

	_, err = service.UpdatePlayer(t.Context(), UpdatePlayerInput{PlayerID: "att-99", Price: &price})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
