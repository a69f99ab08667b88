package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-five/internal/domain/matchstat"
)

type MatchStatRepository struct {
	mu    sync.RWMutex
	items map[string]matchstat.Entry
}

func NewMatchStatRepository() *MatchStatRepository {
	return &MatchStatRepository{items: make(map[string]matchstat.Entry)}
}

func (r *MatchStatRepository) Upsert(_ context.Context, item matchstat.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.Key()] = item
	return nil
}

func (r *MatchStatRepository) Get(_ context.Context, gameweekID, playerID string) (matchstat.Entry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[matchstat.Key(gameweekID, playerID)]
	return item, ok, nil
}

func (r *MatchStatRepository) ListByGameweek(_ context.Context, gameweekID string) ([]matchstat.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchstat.Entry, 0)
	for _, item := range r.items {
		if item.GameweekID == gameweekID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out, nil
}

func (r *MatchStatRepository) SumPointsByPlayer(_ context.Context, playerID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, item := range r.items {
		if item.PlayerID == playerID {
			total += item.Points
		}
	}
	return total, nil
}

func (r *MatchStatRepository) TotalsByPlayer(_ context.Context) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]int)
	for _, item := range r.items {
		out[item.PlayerID] += item.Points
	}
	return out, nil
}
