package usecase

import (
	"testing"

	"github.com/riskibarqy/fantasy-five/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-five/internal/platform/logging"
)

func TestReconcileService_ReconcileTotals(t *testing.T) {
	t.Parallel()

	f := newGameFixture(t)
	f.setPoints(t, "gw-1", map[string]int{"att-01": 9})
	f.setPoints(t, "gw-2", map[string]int{"att-01": 4, "gk-01": 3})
	if err := f.players.UpdateTotalPoints(t.Context(), "gk-01", 3); err != nil {
		t.Fatalf("set gk total: %v", err)
	}
	if err := f.players.UpdateTotalPoints(t.Context(), "mid-04", 5); err != nil {
		t.Fatalf("set stale total: %v", err)
	}
	seedTeam(t, f, fantasy.Team{ID: "team-a", UserID: "user-a", Name: "A FC", TotalPoints: 99}, fantasy.Selection{
		GameweekID: "gw-1", GameweekNumber: 1, PlayerIDs: defaultSquad, CaptainID: "gk-01", Scored: true, GameweekPoints: 11,
	})

	service := NewReconcileService(f.players, f.stats, f.fantasy, logging.NewNop())
	got, err := service.ReconcileTotals(t.Context())
	if err != nil {
		t.Fatalf("reconcile totals: %v", err)
	}
	// att-01 was 0 and mid-04 was 5
	if got.PlayersChecked != 14 || got.PlayersFixed != 2 {
		t.Fatalf("unexpected player counters: checked=%d fixed=%d", got.PlayersChecked, got.PlayersFixed)
	}
	if got.TeamsChecked != 1 || got.TeamsFixed != 1 {
		t.Fatalf("unexpected team counters: checked=%d fixed=%d", got.TeamsChecked, got.TeamsFixed)
	}

	att, _, _ := f.players.GetByID(t.Context(), "att-01")
	if att.TotalPoints != 13 {
		t.Fatalf("unexpected att-01 total: got=%d want=13", att.TotalPoints)
	}
	team, _, _ := f.fantasy.GetTeamByID(t.Context(), "team-a")
	if team.TotalPoints != 11 {
		t.Fatalf("unexpected team total: got=%d want=11", team.TotalPoints)
	}

	again, err := service.ReconcileTotals(t.Context())
	if err != nil {
		t.Fatalf("second reconcile: %v", err)
	}
	if again.PlayersFixed != 0 || again.TeamsFixed != 0 {
		t.Fatalf("second pass should be a no-op: %+v", again)
	}
}
