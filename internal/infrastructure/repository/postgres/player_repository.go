package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-five/internal/domain/player"
	qb "github.com/riskibarqy/fantasy-five/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"public_id",
	"name",
	"position",
	"team_name",
	"price",
	"total_points",
	"is_active",
	"created_at",
	"updated_at",
}

const playerOrder = "CASE position WHEN 'GK' THEN 0 WHEN 'DEF' THEN 1 WHEN 'MID' THEN 2 ELSE 3 END"

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context, filter player.Filter) ([]player.Player, error) {
	var conditions []qb.Condition
	if !filter.IncludeInactive {
		conditions = append(conditions, qb.Eq("is_active", true))
	}
	if filter.Position != "" {
		conditions = append(conditions, qb.Eq("position", string(filter.Position)))
	}

	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(conditions...).
		OrderBy(playerOrder, "name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.Eq("public_id", playerID)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.In("public_id", playerIDs)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by ids query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by ids: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) error {
	query, args, err := qb.InsertModel("players", playerInsertModel{
		PublicID:    item.ID,
		Name:        item.Name,
		Position:    string(item.Position),
		TeamName:    item.TeamName,
		Price:       item.Price,
		TotalPoints: item.TotalPoints,
		IsActive:    item.IsActive,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert player: %w", err)
	}
	return nil
}

// Update leaves total_points alone; it is owned by UpdateTotalPoints.
func (r *PlayerRepository) Update(ctx context.Context, item player.Player) error {
	const query = `
UPDATE players
SET name = :name,
    position = :position,
    team_name = :team_name,
    price = :price,
    is_active = :is_active,
    updated_at = :updated_at
WHERE public_id = :public_id`

	return execOne(ctx, r.db, query, map[string]any{
		"public_id":  item.ID,
		"name":       item.Name,
		"position":   string(item.Position),
		"team_name":  item.TeamName,
		"price":      item.Price,
		"is_active":  item.IsActive,
		"updated_at": item.UpdatedAt,
	}, "update player="+item.ID)
}

func (r *PlayerRepository) UpdateTotalPoints(ctx context.Context, playerID string, total int) error {
	const query = `
UPDATE players
SET total_points = :total_points,
    updated_at = NOW()
WHERE public_id = :public_id`

	return execOne(ctx, r.db, query, map[string]any{
		"public_id":    playerID,
		"total_points": total,
	}, "update player total points="+playerID)
}
