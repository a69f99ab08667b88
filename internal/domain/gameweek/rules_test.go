package gameweek

import (
	"errors"
	"testing"
	"time"
)

func TestCanActivate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  Status
		active  string
		wantErr error
	}{
		{name: "upcoming with none active", status: StatusUpcoming},
		{name: "upcoming while other active", status: StatusUpcoming, active: "gw-9", wantErr: ErrAnotherActive},
		{name: "already active", status: StatusActive, active: "gw-1", wantErr: ErrInvalidTransition},
		{name: "finished", status: StatusFinished, wantErr: ErrInvalidTransition},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := CanActivate(Gameweek{ID: "gw-1", Number: 1, Status: tc.status}, tc.active)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestCanCalculate(t *testing.T) {
	t.Parallel()

	if err := CanCalculate(Gameweek{Status: StatusUpcoming}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if err := CanCalculate(Gameweek{Status: StatusActive}); err != nil {
		t.Fatalf("expected active gameweek to be calculable: %v", err)
	}
	if err := CanCalculate(Gameweek{Status: StatusFinished}); err != nil {
		t.Fatalf("expected finished gameweek to be recalculable: %v", err)
	}
}

func TestVotingTransitions(t *testing.T) {
	t.Parallel()

	gw := Gameweek{ID: "gw-2", Number: 2, Status: StatusActive}
	if err := CanOpenVoting(gw, ""); err != nil {
		t.Fatalf("open voting: %v", err)
	}
	if err := CanOpenVoting(gw, "gw-1"); !errors.Is(err, ErrVotingOpenElse) {
		t.Fatalf("expected ErrVotingOpenElse, got %v", err)
	}
	if err := CanOpenVoting(Gameweek{Status: StatusUpcoming}, ""); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if err := CanCloseVoting(gw); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for closed poll, got %v", err)
	}
	gw.VotingOpen = true
	if err := CanCloseVoting(gw); err != nil {
		t.Fatalf("close voting: %v", err)
	}
}

func TestAcceptsSquadEdits(t *testing.T) {
	t.Parallel()

	deadline := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	gw := Gameweek{Status: StatusActive, Deadline: deadline}

	if !gw.AcceptsSquadEdits(deadline.Add(-time.Minute)) {
		t.Fatalf("expected edits before deadline")
	}
	if gw.AcceptsSquadEdits(deadline) {
		t.Fatalf("expected edits to lock at deadline")
	}
	gw.Status = StatusFinished
	if gw.AcceptsSquadEdits(deadline.Add(-time.Hour)) {
		t.Fatalf("expected finished gameweek to be read-only")
	}
}

func TestGameweekValidate(t *testing.T) {
	t.Parallel()

	gw := Gameweek{ID: "gw-1", Number: 1, Name: "Gameweek 1", Deadline: time.Now(), Status: StatusUpcoming}
	if err := gw.Validate(); err != nil {
		t.Fatalf("expected valid gameweek: %v", err)
	}
	gw.VotingOpen = true
	if err := gw.Validate(); !errors.Is(err, ErrInvalidGameweek) {
		t.Fatalf("expected ErrInvalidGameweek, got %v", err)
	}
}

func TestSeasonStart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "midweek",
			now:  time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC),
			want: time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC),
		},
		{
			name: "saturday after noon",
			now:  time.Date(2026, 10, 17, 15, 0, 0, 0, time.UTC),
			want: time.Date(2026, 10, 24, 12, 0, 0, 0, time.UTC),
		},
		{
			name: "saturday morning",
			now:  time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC),
			want: time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC),
		},
		{
			name: "non utc input",
			now:  time.Date(2026, 10, 17, 20, 0, 0, 0, time.FixedZone("WIB", 7*3600)),
			want: time.Date(2026, 10, 24, 12, 0, 0, 0, time.UTC),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := SeasonStart(tc.now); !got.Equal(tc.want) {
				t.Fatalf("unexpected season start: got=%s want=%s", got, tc.want)
			}
		})
	}
}
