package fantasy

import "context"

// Repository describes team and selection persistence needs from use cases.
type Repository interface {
	GetTeamByID(ctx context.Context, teamID string) (Team, bool, error)
	GetTeamByUserID(ctx context.Context, userID string) (Team, bool, error)
	GetTeamByManagerName(ctx context.Context, managerName string) (Team, bool, error)
	ListTeams(ctx context.Context) ([]Team, error)
	ListTeamsByUserIDs(ctx context.Context, userIDs []string) ([]Team, error)
	// CreateTeam fails with ErrTeamExists when team.UserID already owns a team.
	CreateTeam(ctx context.Context, team Team) error
	UpdateTeam(ctx context.Context, team Team) error

	UpsertSelection(ctx context.Context, selection Selection) error
	// SaveSquad upserts the selection and updates the team in one unit;
	// neither write is visible unless both succeed.
	SaveSquad(ctx context.Context, team Team, selection Selection) error
	GetSelection(ctx context.Context, teamID, gameweekID string) (Selection, bool, error)
	// GetLatestSelectionBefore returns the selection with the highest gameweek
	// number strictly below gameweekNumber.
	GetLatestSelectionBefore(ctx context.Context, teamID string, gameweekNumber int) (Selection, bool, error)
	ListSelectionsByTeam(ctx context.Context, teamID string) ([]Selection, error)
	ListSelectionsByGameweek(ctx context.Context, gameweekID string) ([]Selection, error)

	// RefreshTotalPoints recomputes a team's total from its scored selections.
	RefreshTotalPoints(ctx context.Context, teamID string) (int, error)
}
