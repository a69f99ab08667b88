package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-five/internal/domain/fantasy"
	qb "github.com/riskibarqy/fantasy-five/internal/platform/querybuilder"
)

const teamUserConstraint = "fantasy_teams_user_id_key"

type FantasyRepository struct {
	db *sqlx.DB
}

var teamSelectColumns = []string{
	"id",
	"public_id",
	"user_id",
	"name",
	"manager_name",
	"budget_remaining",
	"total_points",
	"free_transfers",
	"created_at",
	"updated_at",
}

var selectionSelectColumns = []string{
	"team_public_id",
	"gameweek_public_id",
	"gameweek_number",
	"player_ids",
	"captain_id",
	"transfers_made",
	"transfer_penalty",
	"squad_cost",
	"gameweek_points",
	"scored",
	"created_at",
	"updated_at",
}

func NewFantasyRepository(db *sqlx.DB) *FantasyRepository {
	return &FantasyRepository{db: db}
}

func (r *FantasyRepository) GetTeamByID(ctx context.Context, teamID string) (fantasy.Team, bool, error) {
	return r.getTeam(ctx, "get team", qb.Eq("public_id", teamID))
}

func (r *FantasyRepository) GetTeamByUserID(ctx context.Context, userID string) (fantasy.Team, bool, error) {
	return r.getTeam(ctx, "get team by user", qb.Eq("user_id", userID))
}

func (r *FantasyRepository) GetTeamByManagerName(ctx context.Context, managerName string) (fantasy.Team, bool, error) {
	return r.getTeam(ctx, "get team by manager", qb.Eq("manager_name", managerName))
}

func (r *FantasyRepository) getTeam(ctx context.Context, op string, where qb.Condition) (fantasy.Team, bool, error) {
	query, args, err := qb.Select(teamSelectColumns...).From("fantasy_teams").
		Where(where).
		OrderBy("id").
		Limit(1).
		ToSQL()
	if err != nil {
		return fantasy.Team{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fantasy.Team{}, false, nil
		}
		return fantasy.Team{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return row.toDomain(), true, nil
}

func (r *FantasyRepository) ListTeams(ctx context.Context) ([]fantasy.Team, error) {
	return r.listTeams(ctx, "list teams")
}

func (r *FantasyRepository) ListTeamsByUserIDs(ctx context.Context, userIDs []string) ([]fantasy.Team, error) {
	if len(userIDs) == 0 {
		return []fantasy.Team{}, nil
	}
	return r.listTeams(ctx, "list teams by users", qb.In("user_id", userIDs))
}

func (r *FantasyRepository) listTeams(ctx context.Context, op string, where ...qb.Condition) ([]fantasy.Team, error) {
	query, args, err := qb.Select(teamSelectColumns...).From("fantasy_teams").
		Where(where...).
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]fantasy.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *FantasyRepository) CreateTeam(ctx context.Context, team fantasy.Team) error {
	query, args, err := qb.InsertModel("fantasy_teams", teamInsertModel{
		PublicID:        team.ID,
		UserID:          team.UserID,
		Name:            team.Name,
		ManagerName:     team.ManagerName,
		BudgetRemaining: team.BudgetRemaining,
		TotalPoints:     team.TotalPoints,
		FreeTransfers:   team.FreeTransfers,
		CreatedAt:       team.CreatedAt,
		UpdatedAt:       team.UpdatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if constraint, ok := uniqueConstraint(err); ok && constraint == teamUserConstraint {
			return fmt.Errorf("insert team user=%s: %w", team.UserID, fantasy.ErrTeamExists)
		}
		return fmt.Errorf("insert team: %w", err)
	}
	return nil
}

// UpdateTeam leaves total_points alone; it is owned by RefreshTotalPoints.
func (r *FantasyRepository) UpdateTeam(ctx context.Context, team fantasy.Team) error {
	return updateTeam(ctx, r.db, team)
}

func updateTeam(ctx context.Context, db sqlx.ExtContext, team fantasy.Team) error {
	const query = `
UPDATE fantasy_teams
SET name = :name,
    manager_name = :manager_name,
    budget_remaining = :budget_remaining,
    free_transfers = :free_transfers,
    updated_at = :updated_at
WHERE public_id = :public_id`

	return execOne(ctx, db, query, map[string]any{
		"public_id":        team.ID,
		"name":             team.Name,
		"manager_name":     team.ManagerName,
		"budget_remaining": team.BudgetRemaining,
		"free_transfers":   team.FreeTransfers,
		"updated_at":       team.UpdatedAt,
	}, "update team="+team.ID)
}

func (r *FantasyRepository) UpsertSelection(ctx context.Context, selection fantasy.Selection) error {
	return upsertSelection(ctx, r.db, selection)
}

// SaveSquad writes the selection and the team's budget in one transaction.
func (r *FantasyRepository) SaveSquad(ctx context.Context, team fantasy.Team, selection fantasy.Selection) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save squad tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := upsertSelection(ctx, tx, selection); err != nil {
		return err
	}
	if err := updateTeam(ctx, tx, team); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save squad team=%s: %w", team.ID, err)
	}
	return nil
}

func upsertSelection(ctx context.Context, db sqlx.ExtContext, selection fantasy.Selection) error {
	const query = `
INSERT INTO fantasy_selections (
    team_public_id,
    gameweek_public_id,
    gameweek_number,
    player_ids,
    captain_id,
    transfers_made,
    transfer_penalty,
    squad_cost,
    gameweek_points,
    scored,
    created_at,
    updated_at
) VALUES (
    :team_public_id,
    :gameweek_public_id,
    :gameweek_number,
    :player_ids,
    :captain_id,
    :transfers_made,
    :transfer_penalty,
    :squad_cost,
    :gameweek_points,
    :scored,
    :created_at,
    :updated_at
)
ON CONFLICT (team_public_id, gameweek_public_id)
DO UPDATE SET
    gameweek_number = EXCLUDED.gameweek_number,
    player_ids = EXCLUDED.player_ids,
    captain_id = EXCLUDED.captain_id,
    transfers_made = EXCLUDED.transfers_made,
    transfer_penalty = EXCLUDED.transfer_penalty,
    squad_cost = EXCLUDED.squad_cost,
    gameweek_points = EXCLUDED.gameweek_points,
    scored = EXCLUDED.scored,
    updated_at = EXCLUDED.updated_at`

	bound, args, err := sqlx.Named(query, selectionRow(selection))
	if err != nil {
		return fmt.Errorf("bind upsert selection query: %w", err)
	}
	if _, err := db.ExecContext(ctx, db.Rebind(bound), args...); err != nil {
		return fmt.Errorf("upsert selection team=%s gameweek=%s: %w", selection.TeamID, selection.GameweekID, err)
	}
	return nil
}

func (r *FantasyRepository) GetSelection(ctx context.Context, teamID, gameweekID string) (fantasy.Selection, bool, error) {
	return r.getSelection(ctx, "get selection", nil,
		qb.Eq("team_public_id", teamID),
		qb.Eq("gameweek_public_id", gameweekID),
	)
}

func (r *FantasyRepository) GetLatestSelectionBefore(ctx context.Context, teamID string, gameweekNumber int) (fantasy.Selection, bool, error) {
	return r.getSelection(ctx, "get latest selection", []string{"gameweek_number DESC"},
		qb.Eq("team_public_id", teamID),
		qb.Expr("gameweek_number < ?", gameweekNumber),
	)
}

func (r *FantasyRepository) getSelection(ctx context.Context, op string, orderBy []string, where ...qb.Condition) (fantasy.Selection, bool, error) {
	query, args, err := qb.Select(selectionSelectColumns...).From("fantasy_selections").
		Where(where...).
		OrderBy(orderBy...).
		Limit(1).
		ToSQL()
	if err != nil {
		return fantasy.Selection{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row selectionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fantasy.Selection{}, false, nil
		}
		return fantasy.Selection{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return row.toDomain(), true, nil
}

func (r *FantasyRepository) ListSelectionsByTeam(ctx context.Context, teamID string) ([]fantasy.Selection, error) {
	return r.listSelections(ctx, "list selections by team", qb.Eq("team_public_id", teamID))
}

func (r *FantasyRepository) ListSelectionsByGameweek(ctx context.Context, gameweekID string) ([]fantasy.Selection, error) {
	return r.listSelections(ctx, "list selections by gameweek", qb.Eq("gameweek_public_id", gameweekID))
}

func (r *FantasyRepository) listSelections(ctx context.Context, op string, where qb.Condition) ([]fantasy.Selection, error) {
	query, args, err := qb.Select(selectionSelectColumns...).From("fantasy_selections").
		Where(where).
		OrderBy("gameweek_number", "team_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []selectionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]fantasy.Selection, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *FantasyRepository) RefreshTotalPoints(ctx context.Context, teamID string) (int, error) {
	const query = `
UPDATE fantasy_teams t
SET total_points = COALESCE((
        SELECT SUM(s.gameweek_points)
        FROM fantasy_selections s
        WHERE s.team_public_id = t.public_id
          AND s.scored
    ), 0),
    updated_at = NOW()
WHERE t.public_id = $1
RETURNING t.total_points`

	var total int
	if err := r.db.GetContext(ctx, &total, query, teamID); err != nil {
		return 0, fmt.Errorf("refresh team total points team=%s: %w", teamID, err)
	}
	return total, nil
}
