package usecase

import (
	"testing"

	"github.com/riskibarqy/fantasy-five/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-five/internal/infrastructure/repository/memory"
)

func TestLeaderboardService_Global(t *testing.T) {
	t.Parallel()

	repo := memory.NewFantasyRepository()
	for _, team := range []fantasy.Team{
		{ID: "team-1", UserID: "user-1", Name: "Delta", TotalPoints: 30},
		{ID: "team-2", UserID: "user-2", Name: "Alpha", TotalPoints: 42},
		{ID: "team-3", UserID: "user-3", Name: "Charlie", TotalPoints: 30},
		{ID: "team-4", UserID: "user-4", Name: "Bravo", TotalPoints: 12},
	} {
		if err := repo.CreateTeam(t.Context(), team); err != nil {
			t.Fatalf("create team: %v", err)
		}
	}
	service := NewLeaderboardService(repo, 0)

	got, err := service.Global(t.Context(), 0)
	if err != nil {
		t.Fatalf("global leaderboard: %v", err)
	}

	want := []struct {
		name string
		rank int
	}{
		{"Alpha", 1},
		{"Charlie", 2},
		{"Delta", 2},
		{"Bravo", 4},
	}
	if len(got) != len(want) {
		t.Fatalf("unexpected standings size: got=%d want=%d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].TeamName != w.name || got[i].Rank != w.rank {
			t.Fatalf("unexpected row %d: got=%s/%d want=%s/%d", i, got[i].TeamName, got[i].Rank, w.name, w.rank)
		}
	}

	limited, err := service.Global(t.Context(), 2)
	if err != nil {
		t.Fatalf("limited leaderboard: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("unexpected limited size: got=%d want=2", len(limited))
	}
}
