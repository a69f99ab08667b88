package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-five/internal/domain/minileague"
)

type MiniLeagueRepository struct {
	mu      sync.RWMutex
	leagues map[string]minileague.League
	members map[string]map[string]minileague.Membership
}

func NewMiniLeagueRepository() *MiniLeagueRepository {
	return &MiniLeagueRepository{
		leagues: make(map[string]minileague.League),
		members: make(map[string]map[string]minileague.Membership),
	}
}

func (r *MiniLeagueRepository) Create(_ context.Context, item minileague.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.leagues {
		if existing.JoinCode == item.JoinCode {
			return minileague.ErrDuplicateCode
		}
	}
	r.leagues[item.ID] = item
	return nil
}

func (r *MiniLeagueRepository) GetByID(_ context.Context, leagueID string) (minileague.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.leagues[leagueID]
	return item, ok, nil
}

func (r *MiniLeagueRepository) GetByCode(_ context.Context, joinCode string) (minileague.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.leagues {
		if item.JoinCode == joinCode {
			return item, true, nil
		}
	}
	return minileague.League{}, false, nil
}

func (r *MiniLeagueRepository) ListByMember(_ context.Context, userID string) ([]minileague.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]minileague.League, 0)
	for leagueID, members := range r.members {
		if _, ok := members[userID]; ok {
			out = append(out, r.leagues[leagueID])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MiniLeagueRepository) AddMember(_ context.Context, membership minileague.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.leagues[membership.LeagueID]; !ok {
		return errNotFound("mini league", membership.LeagueID)
	}
	members, ok := r.members[membership.LeagueID]
	if !ok {
		members = make(map[string]minileague.Membership)
		r.members[membership.LeagueID] = members
	}
	if _, exists := members[membership.UserID]; exists {
		return minileague.ErrAlreadyMember
	}
	members[membership.UserID] = membership
	return nil
}

func (r *MiniLeagueRepository) IsMember(_ context.Context, leagueID, userID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.members[leagueID][userID]
	return ok, nil
}

func (r *MiniLeagueRepository) ListMemberIDs(_ context.Context, leagueID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.members[leagueID]))
	for userID := range r.members[leagueID] {
		out = append(out, userID)
	}
	sort.Strings(out)
	return out, nil
}
