package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-five/internal/domain/gameweek"
	qb "github.com/riskibarqy/fantasy-five/internal/platform/querybuilder"
)

type GameweekRepository struct {
	db *sqlx.DB
}

var gameweekSelectColumns = []string{
	"id",
	"public_id",
	"number",
	"name",
	"deadline",
	"status",
	"voting_open",
	"activated_at",
	"calculated_at",
	"created_at",
	"updated_at",
}

func NewGameweekRepository(db *sqlx.DB) *GameweekRepository {
	return &GameweekRepository{db: db}
}

func (r *GameweekRepository) List(ctx context.Context) ([]gameweek.Gameweek, error) {
	query, args, err := qb.Select(gameweekSelectColumns...).From("gameweeks").
		OrderBy("number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list gameweeks query: %w", err)
	}

	var rows []gameweekTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list gameweeks: %w", err)
	}

	out := make([]gameweek.Gameweek, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *GameweekRepository) GetByID(ctx context.Context, gameweekID string) (gameweek.Gameweek, bool, error) {
	return r.getOne(ctx, "get gameweek", qb.Eq("public_id", gameweekID))
}

func (r *GameweekRepository) GetActive(ctx context.Context) (gameweek.Gameweek, bool, error) {
	return r.getOne(ctx, "get active gameweek", qb.Eq("status", string(gameweek.StatusActive)))
}

func (r *GameweekRepository) GetVotingOpen(ctx context.Context) (gameweek.Gameweek, bool, error) {
	return r.getOne(ctx, "get voting gameweek", qb.Eq("voting_open", true))
}

func (r *GameweekRepository) GetLatestFinished(ctx context.Context) (gameweek.Gameweek, bool, error) {
	return r.getOne(ctx, "get latest finished gameweek", qb.Eq("status", string(gameweek.StatusFinished)))
}

func (r *GameweekRepository) getOne(ctx context.Context, op string, where qb.Condition) (gameweek.Gameweek, bool, error) {
	query, args, err := qb.Select(gameweekSelectColumns...).From("gameweeks").
		Where(where).
		OrderBy("number DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return gameweek.Gameweek{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row gameweekTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return gameweek.Gameweek{}, false, nil
		}
		return gameweek.Gameweek{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return row.toDomain(), true, nil
}

func (r *GameweekRepository) Create(ctx context.Context, item gameweek.Gameweek) error {
	query, args, err := qb.InsertModel("gameweeks", gameweekInsertModel{
		PublicID:     item.ID,
		Number:       item.Number,
		Name:         item.Name,
		Deadline:     item.Deadline,
		Status:       string(item.Status),
		VotingOpen:   item.VotingOpen,
		ActivatedAt:  nullTime(item.ActivatedAt),
		CalculatedAt: nullTime(item.CalculatedAt),
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert gameweek query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return gameweekWriteError(fmt.Errorf("insert gameweek: %w", err))
	}
	return nil
}

func (r *GameweekRepository) Update(ctx context.Context, item gameweek.Gameweek) error {
	const query = `
UPDATE gameweeks
SET number = :number,
    name = :name,
    deadline = :deadline,
    status = :status,
    voting_open = :voting_open,
    activated_at = :activated_at,
    calculated_at = :calculated_at,
    updated_at = :updated_at
WHERE public_id = :public_id`

	err := execOne(ctx, r.db, query, map[string]any{
		"public_id":     item.ID,
		"number":        item.Number,
		"name":          item.Name,
		"deadline":      item.Deadline,
		"status":        string(item.Status),
		"voting_open":   item.VotingOpen,
		"activated_at":  nullTime(item.ActivatedAt),
		"calculated_at": nullTime(item.CalculatedAt),
		"updated_at":    item.UpdatedAt,
	}, "update gameweek="+item.ID)
	if err != nil {
		return gameweekWriteError(err)
	}
	return nil
}

// gameweekWriteError surfaces the lifecycle rule a unique violation broke.
func gameweekWriteError(err error) error {
	if constraint, ok := uniqueConstraint(err); ok {
		if ruleErr, known := gameweekConstraintErrors[constraint]; known {
			return fmt.Errorf("%w: %w", ruleErr, err)
		}
	}
	return err
}
