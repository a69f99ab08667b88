package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-five/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo player pool and an upcoming season into an
// empty database. It is a no-op once any player exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, seasonStart time.Time, gameweeks int) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM players`); err != nil {
		return fmt.Errorf("count players for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, p := range memory.SeedPlayers() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO players (public_id, name, position, team_name, price, is_active)
VALUES (:public_id, :name, :position, :team_name, :price, TRUE)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id": p.ID,
			"name":      p.Name,
			"position":  string(p.Position),
			"team_name": p.TeamName,
			"price":     p.Price,
		})
		if err != nil {
			return fmt.Errorf("bind seed player %s query: %w", p.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed player %s: %w", p.ID, err)
		}
	}

	for _, g := range memory.SeedGameweeks(seasonStart, gameweeks) {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO gameweeks (public_id, number, name, deadline, status)
VALUES (:public_id, :number, :name, :deadline, :status)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id": g.ID,
			"number":    g.Number,
			"name":      g.Name,
			"deadline":  g.Deadline.UTC(),
			"status":    string(g.Status),
		})
		if err != nil {
			return fmt.Errorf("bind seed gameweek %s query: %w", g.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed gameweek %s: %w", g.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO app_settings (id) VALUES (1) ON CONFLICT (id) DO NOTHING`); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
