package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-five/internal/domain/fantasy"
)

type FantasyRepository struct {
	mu         sync.RWMutex
	teams      map[string]fantasy.Team
	selections map[string]fantasy.Selection
}

func NewFantasyRepository() *FantasyRepository {
	return &FantasyRepository{
		teams:      make(map[string]fantasy.Team),
		selections: make(map[string]fantasy.Selection),
	}
}

func (r *FantasyRepository) GetTeamByID(_ context.Context, teamID string) (fantasy.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	team, ok := r.teams[teamID]
	return team, ok, nil
}

func (r *FantasyRepository) GetTeamByUserID(_ context.Context, userID string) (fantasy.Team, bool, error) {
	return r.findTeam(func(t fantasy.Team) bool { return t.UserID == userID })
}

func (r *FantasyRepository) GetTeamByManagerName(_ context.Context, managerName string) (fantasy.Team, bool, error) {
	return r.findTeam(func(t fantasy.Team) bool { return t.ManagerName == managerName })
}

func (r *FantasyRepository) ListTeams(_ context.Context) ([]fantasy.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fantasy.Team, 0, len(r.teams))
	for _, team := range r.teams {
		out = append(out, team)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *FantasyRepository) ListTeamsByUserIDs(_ context.Context, userIDs []string) ([]fantasy.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		wanted[id] = struct{}{}
	}
	out := make([]fantasy.Team, 0, len(userIDs))
	for _, team := range r.teams {
		if _, ok := wanted[team.UserID]; ok {
			out = append(out, team)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *FantasyRepository) CreateTeam(_ context.Context, team fantasy.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.teams {
		if existing.UserID == team.UserID {
			return fmt.Errorf("%w: user=%s team=%s", fantasy.ErrTeamExists, team.UserID, existing.ID)
		}
	}
	r.teams[team.ID] = team
	return nil
}

func (r *FantasyRepository) UpdateTeam(_ context.Context, team fantasy.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.teams[team.ID]
	if !ok {
		return errNotFound("team", team.ID)
	}
	team.TotalPoints = existing.TotalPoints
	r.teams[team.ID] = team
	return nil
}

func (r *FantasyRepository) UpsertSelection(_ context.Context, selection fantasy.Selection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.selections[selectionKey(selection.TeamID, selection.GameweekID)] = cloneSelection(selection)
	return nil
}

func (r *FantasyRepository) SaveSquad(_ context.Context, team fantasy.Team, selection fantasy.Selection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.teams[team.ID]
	if !ok {
		return errNotFound("team", team.ID)
	}
	team.TotalPoints = existing.TotalPoints
	r.teams[team.ID] = team
	r.selections[selectionKey(selection.TeamID, selection.GameweekID)] = cloneSelection(selection)
	return nil
}

func (r *FantasyRepository) GetSelection(_ context.Context, teamID, gameweekID string) (fantasy.Selection, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	selection, ok := r.selections[selectionKey(teamID, gameweekID)]
	if !ok {
		return fantasy.Selection{}, false, nil
	}
	return cloneSelection(selection), true, nil
}

func (r *FantasyRepository) GetLatestSelectionBefore(_ context.Context, teamID string, gameweekNumber int) (fantasy.Selection, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest fantasy.Selection
	found := false
	for _, selection := range r.selections {
		if selection.TeamID != teamID || selection.GameweekNumber >= gameweekNumber {
			continue
		}
		if !found || selection.GameweekNumber > latest.GameweekNumber {
			latest = selection
			found = true
		}
	}
	if !found {
		return fantasy.Selection{}, false, nil
	}
	return cloneSelection(latest), true, nil
}

func (r *FantasyRepository) ListSelectionsByTeam(_ context.Context, teamID string) ([]fantasy.Selection, error) {
	return r.listSelections(func(s fantasy.Selection) bool { return s.TeamID == teamID }), nil
}

func (r *FantasyRepository) ListSelectionsByGameweek(_ context.Context, gameweekID string) ([]fantasy.Selection, error) {
	return r.listSelections(func(s fantasy.Selection) bool { return s.GameweekID == gameweekID }), nil
}

func (r *FantasyRepository) RefreshTotalPoints(_ context.Context, teamID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	team, ok := r.teams[teamID]
	if !ok {
		return 0, errNotFound("team", teamID)
	}
	total := 0
	for _, selection := range r.selections {
		if selection.TeamID == teamID && selection.Scored {
			total += selection.GameweekPoints
		}
	}
	team.TotalPoints = total
	r.teams[teamID] = team
	return total, nil
}

func (r *FantasyRepository) findTeam(match func(fantasy.Team) bool) (fantasy.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, team := range r.teams {
		if match(team) {
			return team, true, nil
		}
	}
	return fantasy.Team{}, false, nil
}

func (r *FantasyRepository) listSelections(match func(fantasy.Selection) bool) []fantasy.Selection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fantasy.Selection, 0)
	for _, selection := range r.selections {
		if match(selection) {
			out = append(out, cloneSelection(selection))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GameweekNumber != out[j].GameweekNumber {
			return out[i].GameweekNumber < out[j].GameweekNumber
		}
		return out[i].TeamID < out[j].TeamID
	})
	return out
}

func selectionKey(teamID, gameweekID string) string {
	return teamID + "::" + gameweekID
}

func cloneSelection(s fantasy.Selection) fantasy.Selection {
	copied := s
	copied.PlayerIDs = append([]string(nil), s.PlayerIDs...)
	return copied
}
