package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-five/internal/domain/minileague"
	qb "github.com/riskibarqy/fantasy-five/internal/platform/querybuilder"
)

type miniLeagueTableModel struct {
	PublicID  string    `db:"public_id"`
	Name      string    `db:"name"`
	JoinCode  string    `db:"join_code"`
	CreatedBy string    `db:"created_by"`
	CreatedAt time.Time `db:"created_at"`
}

func (m miniLeagueTableModel) toDomain() minileague.League {
	return minileague.League{
		ID:        m.PublicID,
		Name:      m.Name,
		JoinCode:  m.JoinCode,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

type miniLeagueMemberModel struct {
	LeagueID string    `db:"league_public_id"`
	UserID   string    `db:"user_id"`
	JoinedAt time.Time `db:"joined_at"`
}

var miniLeagueSelectColumns = []string{
	"public_id",
	"name",
	"join_code",
	"created_by",
	"created_at",
}

type MiniLeagueRepository struct {
	db *sqlx.DB
}

func NewMiniLeagueRepository(db *sqlx.DB) *MiniLeagueRepository {
	return &MiniLeagueRepository{db: db}
}

func (r *MiniLeagueRepository) Create(ctx context.Context, item minileague.League) error {
	query, args, err := qb.InsertModel("mini_leagues", miniLeagueTableModel{
		PublicID:  item.ID,
		Name:      item.Name,
		JoinCode:  item.JoinCode,
		CreatedBy: item.CreatedBy,
		CreatedAt: item.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert mini league query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if constraint, ok := uniqueConstraint(err); ok && constraint == "mini_leagues_join_code_key" {
			return minileague.ErrDuplicateCode
		}
		return fmt.Errorf("insert mini league: %w", err)
	}
	return nil
}

func (r *MiniLeagueRepository) GetByID(ctx context.Context, leagueID string) (minileague.League, bool, error) {
	return r.getOne(ctx, "get mini league", qb.Eq("public_id", leagueID))
}

func (r *MiniLeagueRepository) GetByCode(ctx context.Context, joinCode string) (minileague.League, bool, error) {
	return r.getOne(ctx, "get mini league by code", qb.Eq("join_code", joinCode))
}

func (r *MiniLeagueRepository) getOne(ctx context.Context, op string, where qb.Condition) (minileague.League, bool, error) {
	query, args, err := qb.Select(miniLeagueSelectColumns...).From("mini_leagues").
		Where(where).
		ToSQL()
	if err != nil {
		return minileague.League{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row miniLeagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return minileague.League{}, false, nil
		}
		return minileague.League{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return row.toDomain(), true, nil
}

func (r *MiniLeagueRepository) ListByMember(ctx context.Context, userID string) ([]minileague.League, error) {
	const query = `
SELECT l.public_id, l.name, l.join_code, l.created_by, l.created_at
FROM mini_leagues l
JOIN mini_league_members m ON m.league_public_id = l.public_id
WHERE m.user_id = $1
ORDER BY l.created_at, l.id`

	var rows []miniLeagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("list mini leagues by member: %w", err)
	}

	out := make([]minileague.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MiniLeagueRepository) AddMember(ctx context.Context, membership minileague.Membership) error {
	query, args, err := qb.InsertModel("mini_league_members", miniLeagueMemberModel{
		LeagueID: membership.LeagueID,
		UserID:   membership.UserID,
		JoinedAt: membership.JoinedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert mini league member query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if constraint, ok := uniqueConstraint(err); ok && constraint == "mini_league_members_pkey" {
			return minileague.ErrAlreadyMember
		}
		return fmt.Errorf("insert mini league member: %w", err)
	}
	return nil
}

func (r *MiniLeagueRepository) IsMember(ctx context.Context, leagueID, userID string) (bool, error) {
	const query = `
SELECT EXISTS (
    SELECT 1 FROM mini_league_members
    WHERE league_public_id = $1 AND user_id = $2
)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, leagueID, userID); err != nil {
		return false, fmt.Errorf("check mini league membership: %w", err)
	}
	return exists, nil
}

func (r *MiniLeagueRepository) ListMemberIDs(ctx context.Context, leagueID string) ([]string, error) {
	query, args, err := qb.Select("user_id").From("mini_league_members").
		Where(qb.Eq("league_public_id", leagueID)).
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list mini league members query: %w", err)
	}

	var out []string
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list mini league members: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}
