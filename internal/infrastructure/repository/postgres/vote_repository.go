package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-five/internal/domain/vote"
	qb "github.com/riskibarqy/fantasy-five/internal/platform/querybuilder"
)

type voteTableModel struct {
	PublicID   string    `db:"public_id"`
	GameweekID string    `db:"gameweek_public_id"`
	UserID     string    `db:"user_id"`
	FirstID    string    `db:"first_player_id"`
	SecondID   string    `db:"second_player_id"`
	ThirdID    string    `db:"third_player_id"`
	CreatedAt  time.Time `db:"created_at"`
}

func (m voteTableModel) toDomain() vote.Vote {
	return vote.Vote{
		ID:         m.PublicID,
		GameweekID: m.GameweekID,
		UserID:     m.UserID,
		FirstID:    m.FirstID,
		SecondID:   m.SecondID,
		ThirdID:    m.ThirdID,
		CreatedAt:  m.CreatedAt.UTC(),
	}
}

var voteSelectColumns = []string{
	"public_id",
	"gameweek_public_id",
	"user_id",
	"first_player_id",
	"second_player_id",
	"third_player_id",
	"created_at",
}

type VoteRepository struct {
	db *sqlx.DB
}

func NewVoteRepository(db *sqlx.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

func (r *VoteRepository) Create(ctx context.Context, item vote.Vote) error {
	query, args, err := qb.InsertModel("mvp_votes", voteTableModel{
		PublicID:   item.ID,
		GameweekID: item.GameweekID,
		UserID:     item.UserID,
		FirstID:    item.FirstID,
		SecondID:   item.SecondID,
		ThirdID:    item.ThirdID,
		CreatedAt:  item.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert vote query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if constraint, ok := uniqueConstraint(err); ok && constraint == "mvp_votes_gameweek_user_key" {
			return vote.ErrAlreadyVoted
		}
		return fmt.Errorf("insert vote: %w", err)
	}
	return nil
}

func (r *VoteRepository) GetByUser(ctx context.Context, gameweekID, userID string) (vote.Vote, bool, error) {
	query, args, err := qb.Select(voteSelectColumns...).From("mvp_votes").
		Where(
			qb.Eq("gameweek_public_id", gameweekID),
			qb.Eq("user_id", userID),
		).
		ToSQL()
	if err != nil {
		return vote.Vote{}, false, fmt.Errorf("build get vote query: %w", err)
	}

	var row voteTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return vote.Vote{}, false, nil
		}
		return vote.Vote{}, false, fmt.Errorf("get vote: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *VoteRepository) ListByGameweek(ctx context.Context, gameweekID string) ([]vote.Vote, error) {
	query, args, err := qb.Select(voteSelectColumns...).From("mvp_votes").
		Where(qb.Eq("gameweek_public_id", gameweekID)).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list votes query: %w", err)
	}

	var rows []voteTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}

	out := make([]vote.Vote, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
