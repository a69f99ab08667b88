package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-five/internal/domain/gameweek"
)

// GameweekRepository enforces the single-active and single-poll rules the
// way the SQL partial unique indexes do.
type GameweekRepository struct {
	mu    sync.RWMutex
	items map[string]gameweek.Gameweek
}

func NewGameweekRepository(items []gameweek.Gameweek) *GameweekRepository {
	index := make(map[string]gameweek.Gameweek, len(items))
	for _, item := range items {
		index[item.ID] = cloneGameweek(item)
	}
	return &GameweekRepository{items: index}
}

func (r *GameweekRepository) List(_ context.Context) ([]gameweek.Gameweek, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gameweek.Gameweek, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, cloneGameweek(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *GameweekRepository) GetByID(_ context.Context, gameweekID string) (gameweek.Gameweek, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[gameweekID]
	if !ok {
		return gameweek.Gameweek{}, false, nil
	}
	return cloneGameweek(item), true, nil
}

func (r *GameweekRepository) GetActive(_ context.Context) (gameweek.Gameweek, bool, error) {
	return r.find(func(g gameweek.Gameweek) bool { return g.Status == gameweek.StatusActive })
}

func (r *GameweekRepository) GetVotingOpen(_ context.Context) (gameweek.Gameweek, bool, error) {
	return r.find(func(g gameweek.Gameweek) bool { return g.VotingOpen })
}

func (r *GameweekRepository) GetLatestFinished(_ context.Context) (gameweek.Gameweek, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest gameweek.Gameweek
	found := false
	for _, item := range r.items {
		if item.Status != gameweek.StatusFinished {
			continue
		}
		if !found || item.Number > latest.Number {
			latest = item
			found = true
		}
	}
	return cloneGameweek(latest), found, nil
}

func (r *GameweekRepository) Create(_ context.Context, item gameweek.Gameweek) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkUnique(item); err != nil {
		return err
	}
	r.items[item.ID] = cloneGameweek(item)
	return nil
}

func (r *GameweekRepository) Update(_ context.Context, item gameweek.Gameweek) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return errNotFound("gameweek", item.ID)
	}
	if err := r.checkUnique(item); err != nil {
		return err
	}
	r.items[item.ID] = cloneGameweek(item)
	return nil
}

func (r *GameweekRepository) find(match func(gameweek.Gameweek) bool) (gameweek.Gameweek, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if match(item) {
			return cloneGameweek(item), true, nil
		}
	}
	return gameweek.Gameweek{}, false, nil
}

// checkUnique must be called with the write lock held.
func (r *GameweekRepository) checkUnique(item gameweek.Gameweek) error {
	for id, other := range r.items {
		if id == item.ID {
			continue
		}
		if other.Number == item.Number {
			return gameweek.ErrDuplicateNumber
		}
		if other.Status == gameweek.StatusActive && item.Status == gameweek.StatusActive {
			return gameweek.ErrAnotherActive
		}
		if other.VotingOpen && item.VotingOpen {
			return gameweek.ErrVotingOpenElse
		}
	}
	return nil
}

func cloneGameweek(g gameweek.Gameweek) gameweek.Gameweek {
	copied := g
	if g.ActivatedAt != nil {
		t := *g.ActivatedAt
		copied.ActivatedAt = &t
	}
	if g.CalculatedAt != nil {
		t := *g.CalculatedAt
		copied.CalculatedAt = &t
	}
	return copied
}
