package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-five/internal/domain/player"
)

type PlayerRepository struct {
	mu    sync.RWMutex
	items map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	items := make(map[string]player.Player, len(players))
	for _, p := range players {
		items[p.ID] = p
	}

	return &PlayerRepository{items: items}
}

func (r *PlayerRepository) List(_ context.Context, filter player.Filter) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.items))
	for _, p := range r.items {
		if !filter.IncludeInactive && !p.IsActive {
			continue
		}
		if filter.Position != "" && p.Position != filter.Position {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return positionOrder(out[i].Position) < positionOrder(out[j].Position)
		}
		return out[i].Name < out[j].Name
	})

	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[playerID]
	return p, ok, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(playerIDs))
	seen := make(map[string]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		p, ok := r.items[id]
		if !ok {
			continue
		}
		out = append(out, p)
	}

	return out, nil
}

func (r *PlayerRepository) Create(_ context.Context, item player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	return nil
}

func (r *PlayerRepository) Update(_ context.Context, item player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[item.ID]
	if !ok {
		return errNotFound("player", item.ID)
	}
	item.TotalPoints = existing.TotalPoints
	r.items[item.ID] = item
	return nil
}

func (r *PlayerRepository) UpdateTotalPoints(_ context.Context, playerID string, total int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[playerID]
	if !ok {
		return errNotFound("player", playerID)
	}
	p.TotalPoints = total
	r.items[playerID] = p
	return nil
}

func positionOrder(pos player.Position) int {
	switch pos {
	case player.PositionGoalkeeper:
		return 0
	case player.PositionDefender:
		return 1
	case player.PositionMidfielder:
		return 2
	default:
		return 3
	}
}
