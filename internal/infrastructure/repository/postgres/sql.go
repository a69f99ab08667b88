package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueViolation pq.ErrorCode = "23505"

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// uniqueConstraint returns the violated constraint name for a 23505 error.
func uniqueConstraint(err error) (string, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolation {
		return "", false
	}
	return pqErr.Constraint, true
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullTimeToPtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time.UTC()
	return &t
}

// execOne runs a named statement that must touch exactly one row.
func execOne(ctx context.Context, db sqlx.ExtContext, query string, params map[string]any, op string) error {
	bound, args, err := sqlx.Named(query, params)
	if err != nil {
		return fmt.Errorf("bind %s query: %w", op, err)
	}
	res, err := db.ExecContext(ctx, db.Rebind(bound), args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, sql.ErrNoRows)
	}
	return nil
}

// execNamed runs a named statement without a row count check.
func execNamed(ctx context.Context, db sqlx.ExtContext, query string, params map[string]any, op string) error {
	bound, args, err := sqlx.Named(query, params)
	if err != nil {
		return fmt.Errorf("bind %s query: %w", op, err)
	}
	if _, err := db.ExecContext(ctx, db.Rebind(bound), args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
