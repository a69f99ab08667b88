package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-five/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-five/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-five/internal/platform/logging"
)

func (f *gameFixture) voteService(awarder MVPAwarder) *VoteService {
	service := NewVoteService(f.gameweeks, f.players, memory.NewVoteRepository(), awarder, &sequenceIDGenerator{prefix: "vote"}, logging.NewNop())
	service.now = func() time.Time { return f.now }
	return service
}

func openVoting(t *testing.T, f *gameFixture, gameweekID string) {
	t.Helper()
	if _, err := f.gameweekService().OpenVoting(t.Context(), gameweekID); err != nil {
		t.Fatalf("open voting: %v", err)
	}
}

func TestVoteService_SubmitVote(t *testing.T) {
	t.Parallel()

	f := newGameFixture(t)
	service := f.voteService(nil)
	ballot := SubmitVoteInput{UserID: "user-1", GameweekID: "gw-1", FirstID: "att-01", SecondID: "mid-02", ThirdID: "gk-01"}

	_, err := service.SubmitVote(t.Context(), ballot)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden while voting is closed, got %v", err)
	}

	openVoting(t, f, "gw-1")

	created, err := service.SubmitVote(t.Context(), ballot)
	if err != nil {
		t.Fatalf("submit vote: %v", err)
	}
	if created.ID != "vote-001" {
		t.Fatalf("unexpected vote id: got=%s want=vote-001", created.ID)
	}

	_, err = service.SubmitVote(t.Context(), ballot)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on second ballot, got %v", err)
	}

	mine, exists, err := service.MyVote(t.Context(), "user-1", "gw-1")
	if err != nil || !exists {
		t.Fatalf("expected stored vote, exists=%v err=%v", exists, err)
	}
	if mine.FirstID != "att-01" {
		t.Fatalf("unexpected first pick: got=%s want=att-01", mine.FirstID)
	}
}

func TestVoteService_SubmitVote_InvalidBallots(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input SubmitVoteInput
	}{
		{name: "repeated player", input: SubmitVoteInput{UserID: "user-1", GameweekID: "gw-1", FirstID: "att-01", SecondID: "att-01", ThirdID: "gk-01"}},
		{name: "missing pick", input: SubmitVoteInput{UserID: "user-1", GameweekID: "gw-1", FirstID: "att-01", SecondID: "mid-01"}},
		{name: "unknown player", input: SubmitVoteInput{UserID: "user-1", GameweekID: "gw-1", FirstID: "att-01", SecondID: "mid-01", ThirdID: "gk-99"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := newGameFixture(t)
			openVoting(t, f, "gw-1")
			service := f.voteService(nil)

			_, err := service.SubmitVote(t.Context(), tc.input)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestVoteService_CloseVoting_AwardsWinner(t *testing.T) {
	t.Parallel()

	f := newGameFixture(t)
	stats := f.matchStatService()
	service := f.voteService(stats)
	openVoting(t, f, "gw-1")

	if _, err := stats.SubmitMatchStat(t.Context(), SubmitMatchStatInput{
		GameweekID: "gw-1",
		PlayerID:   "mid-02",
		Stat:       scoring.Stat{MinutesPlayed: 40, Assists: 1},
	}); err != nil {
		t.Fatalf("submit match stat: %v", err)
	}

	ballots := []SubmitVoteInput{
		{UserID: "user-1", GameweekID: "gw-1", FirstID: "mid-02", SecondID: "att-01", ThirdID: "gk-01"},
		{UserID: "user-2", GameweekID: "gw-1", FirstID: "att-01", SecondID: "mid-02", ThirdID: "gk-01"},
		{UserID: "user-3", GameweekID: "gw-1", FirstID: "mid-02", SecondID: "gk-01", ThirdID: "att-01"},
	}
	for _, b := range ballots {
		if _, err := service.SubmitVote(t.Context(), b); err != nil {
			t.Fatalf("submit vote %s: %v", b.UserID, err)
		}
	}

	results, err := service.Results(t.Context(), "gw-1")
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	// mid-02: 3+2+3, att-01: 2+3+1, gk-01: 1+1+2
	if len(results) != 3 || results[0].PlayerID != "mid-02" || results[0].Score != 8 {
		t.Fatalf("unexpected results: %+v", results)
	}
	if results[0].Player.Name != "Marc Klok" {
		t.Fatalf("expected player details on result, got %+v", results[0].Player)
	}

	closed, err := service.CloseVoting(t.Context(), "gw-1", true)
	if err != nil {
		t.Fatalf("close voting: %v", err)
	}
	if closed.Gameweek.VotingOpen {
		t.Fatalf("expected voting closed")
	}
	if closed.MVPPlayerID != "mid-02" || !closed.Awarded {
		t.Fatalf("unexpected mvp: player=%s awarded=%v", closed.MVPPlayerID, closed.Awarded)
	}

	entry, _, err := f.stats.Get(t.Context(), "gw-1", "mid-02")
	if err != nil {
		t.Fatalf("get stat: %v", err)
	}
	// appearance 1 + assist 3 + mvp 3
	if !entry.Stat.MVP || entry.Points != 7 {
		t.Fatalf("unexpected mvp entry: mvp=%v points=%d", entry.Stat.MVP, entry.Points)
	}

	_, err = service.CloseVoting(t.Context(), "gw-1", true)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition when already closed, got %v", err)
	}
}

func TestVoteService_CloseVoting_WithoutAward(t *testing.T) {
	t.Parallel()

	f := newGameFixture(t)
	service := f.voteService(f.matchStatService())
	openVoting(t, f, "gw-1")

	closed, err := service.CloseVoting(t.Context(), "gw-1", false)
	if err != nil {
		t.Fatalf("close voting: %v", err)
	}
	if closed.MVPPlayerID != "" || closed.Awarded || len(closed.Results) != 0 {
		t.Fatalf("unexpected close result without ballots: %+v", closed)
	}
}
