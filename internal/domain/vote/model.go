package vote

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var ErrInvalidBallot = errors.New("invalid ballot")

// RankWeights are the tally points for first, second and third place.
var RankWeights = [3]int{3, 2, 1}

// Vote is one user's ranked top-3 for a gameweek.
type Vote struct {
	ID         string
	GameweekID string
	UserID     string
	FirstID    string
	SecondID   string
	ThirdID    string
	CreatedAt  time.Time
}

// Picks returns the ballot in rank order.
func (v Vote) Picks() [3]string {
	return [3]string{v.FirstID, v.SecondID, v.ThirdID}
}

func (v Vote) Validate() error {
	picks := v.Picks()
	seen := make(map[string]struct{}, len(picks))
	for i, id := range picks {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("%w: pick %d is required", ErrInvalidBallot, i+1)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: player %s picked twice", ErrInvalidBallot, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Result is one player's line in a tally.
type Result struct {
	PlayerID    string
	Score       int
	FirstPlaces int
	Votes       int
}

// Tally scores ballots 3/2/1 and sorts by score, then first places, then id.
func Tally(votes []Vote) []Result {
	byPlayer := make(map[string]*Result)
	for _, v := range votes {
		for rank, id := range v.Picks() {
			r, ok := byPlayer[id]
			if !ok {
				r = &Result{PlayerID: id}
				byPlayer[id] = r
			}
			r.Score += RankWeights[rank]
			r.Votes++
			if rank == 0 {
				r.FirstPlaces++
			}
		}
	}

	out := make([]Result, 0, len(byPlayer))
	for _, r := range byPlayer {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].FirstPlaces != out[j].FirstPlaces {
			return out[i].FirstPlaces > out[j].FirstPlaces
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}
