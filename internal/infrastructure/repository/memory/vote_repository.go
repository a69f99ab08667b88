package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-five/internal/domain/vote"
)

type VoteRepository struct {
	mu    sync.RWMutex
	items map[string]vote.Vote
}

func NewVoteRepository() *VoteRepository {
	return &VoteRepository{items: make(map[string]vote.Vote)}
}

func (r *VoteRepository) Create(_ context.Context, item vote.Vote) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := voteKey(item.GameweekID, item.UserID)
	if _, exists := r.items[key]; exists {
		return vote.ErrAlreadyVoted
	}
	r.items[key] = item
	return nil
}

func (r *VoteRepository) GetByUser(_ context.Context, gameweekID, userID string) (vote.Vote, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[voteKey(gameweekID, userID)]
	return item, ok, nil
}

func (r *VoteRepository) ListByGameweek(_ context.Context, gameweekID string) ([]vote.Vote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]vote.Vote, 0)
	for _, item := range r.items {
		if item.GameweekID == gameweekID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func voteKey(gameweekID, userID string) string {
	return gameweekID + "::" + userID
}
