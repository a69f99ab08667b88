package vote

import (
	"errors"
	"testing"
)

func TestTally(t *testing.T) {
	t.Parallel()

	votes := []Vote{
		{UserID: "u1", FirstID: "a", SecondID: "b", ThirdID: "c"},
		{UserID: "u2", FirstID: "b", SecondID: "a", ThirdID: "c"},
		{UserID: "u3", FirstID: "c", SecondID: "b", ThirdID: "a"},
	}

	got := Tally(votes)
	if len(got) != 3 {
		t.Fatalf("unexpected result count: got=%d want=3", len(got))
	}

	// a: 3+2+1=6, b: 2+3+2=7, c: 1+1+3=5
	want := []Result{
		{PlayerID: "b", Score: 7, FirstPlaces: 1, Votes: 3},
		{PlayerID: "a", Score: 6, FirstPlaces: 1, Votes: 3},
		{PlayerID: "c", Score: 5, FirstPlaces: 1, Votes: 3},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected result %d: got=%+v want=%+v", i, got[i], want[i])
		}
	}
}

func TestTallyTieBreaksOnFirstPlaces(t *testing.T) {
	t.Parallel()

	// all score 4; x and z have one first place each, y has none
	votes := []Vote{
		{FirstID: "x", SecondID: "y", ThirdID: "z"},
		{FirstID: "z", SecondID: "y", ThirdID: "x"},
	}

	got := Tally(votes)
	if got[0].PlayerID != "x" || got[1].PlayerID != "z" || got[2].PlayerID != "y" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestVoteValidate(t *testing.T) {
	t.Parallel()

	if err := (Vote{FirstID: "a", SecondID: "b", ThirdID: "c"}).Validate(); err != nil {
		t.Fatalf("expected valid ballot: %v", err)
	}
	if err := (Vote{FirstID: "a", SecondID: "a", ThirdID: "c"}).Validate(); !errors.Is(err, ErrInvalidBallot) {
		t.Fatalf("expected ErrInvalidBallot, got %v", err)
	}
	if err := (Vote{FirstID: "a", SecondID: "b"}).Validate(); !errors.Is(err, ErrInvalidBallot) {
		t.Fatalf("expected ErrInvalidBallot for missing pick, got %v", err)
	}
}
