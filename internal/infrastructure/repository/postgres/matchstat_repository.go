package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-five/internal/domain/matchstat"
	qb "github.com/riskibarqy/fantasy-five/internal/platform/querybuilder"
)

type MatchStatRepository struct {
	db *sqlx.DB
}

var matchStatSelectColumns = []string{
	"gameweek_public_id",
	"player_public_id",
	"stat",
	"points",
	"created_at",
	"updated_at",
}

func NewMatchStatRepository(db *sqlx.DB) *MatchStatRepository {
	return &MatchStatRepository{db: db}
}

func (r *MatchStatRepository) Upsert(ctx context.Context, item matchstat.Entry) error {
	stat, err := sonic.Marshal(item.Stat)
	if err != nil {
		return fmt.Errorf("encode stat: %w", err)
	}

	const query = `
INSERT INTO match_stats (gameweek_public_id, player_public_id, stat, points, created_at, updated_at)
VALUES (:gameweek_public_id, :player_public_id, :stat, :points, :created_at, :updated_at)
ON CONFLICT (gameweek_public_id, player_public_id)
DO UPDATE SET
    stat = EXCLUDED.stat,
    points = EXCLUDED.points,
    updated_at = EXCLUDED.updated_at`

	return execNamed(ctx, r.db, query, map[string]any{
		"gameweek_public_id": item.GameweekID,
		"player_public_id":   item.PlayerID,
		"stat":               string(stat),
		"points":             item.Points,
		"created_at":         item.CreatedAt,
		"updated_at":         item.UpdatedAt,
	}, "upsert match stat")
}

func (r *MatchStatRepository) Get(ctx context.Context, gameweekID, playerID string) (matchstat.Entry, bool, error) {
	query, args, err := qb.Select(matchStatSelectColumns...).From("match_stats").
		Where(
			qb.Eq("gameweek_public_id", gameweekID),
			qb.Eq("player_public_id", playerID),
		).
		ToSQL()
	if err != nil {
		return matchstat.Entry{}, false, fmt.Errorf("build get match stat query: %w", err)
	}

	var row matchStatTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return matchstat.Entry{}, false, nil
		}
		return matchstat.Entry{}, false, fmt.Errorf("get match stat: %w", err)
	}
	item, err := row.toDomain()
	if err != nil {
		return matchstat.Entry{}, false, err
	}
	return item, true, nil
}

func (r *MatchStatRepository) ListByGameweek(ctx context.Context, gameweekID string) ([]matchstat.Entry, error) {
	query, args, err := qb.Select(matchStatSelectColumns...).From("match_stats").
		Where(qb.Eq("gameweek_public_id", gameweekID)).
		OrderBy("points DESC", "player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list match stats query: %w", err)
	}

	var rows []matchStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list match stats: %w", err)
	}

	out := make([]matchstat.Entry, 0, len(rows))
	for _, row := range rows {
		item, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *MatchStatRepository) SumPointsByPlayer(ctx context.Context, playerID string) (int, error) {
	const query = `SELECT COALESCE(SUM(points), 0) FROM match_stats WHERE player_public_id = $1`

	var total int
	if err := r.db.GetContext(ctx, &total, query, playerID); err != nil {
		return 0, fmt.Errorf("sum match stat points player=%s: %w", playerID, err)
	}
	return total, nil
}

func (r *MatchStatRepository) TotalsByPlayer(ctx context.Context) (map[string]int, error) {
	const query = `
SELECT player_public_id, SUM(points) AS total
FROM match_stats
GROUP BY player_public_id`

	var rows []struct {
		PlayerID string `db:"player_public_id"`
		Total    int    `db:"total"`
	}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("sum match stat points by player: %w", err)
	}

	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.PlayerID] = row.Total
	}
	return out, nil
}
