package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/fantasy-five/internal/domain/gameweek"
)

type gameweekTableModel struct {
	ID           int64        `db:"id"`
	PublicID     string       `db:"public_id"`
	Number       int          `db:"number"`
	Name         string       `db:"name"`
	Deadline     time.Time    `db:"deadline"`
	Status       string       `db:"status"`
	VotingOpen   bool         `db:"voting_open"`
	ActivatedAt  sql.NullTime `db:"activated_at"`
	CalculatedAt sql.NullTime `db:"calculated_at"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
}

type gameweekInsertModel struct {
	PublicID     string       `db:"public_id"`
	Number       int          `db:"number"`
	Name         string       `db:"name"`
	Deadline     time.Time    `db:"deadline"`
	Status       string       `db:"status"`
	VotingOpen   bool         `db:"voting_open"`
	ActivatedAt  sql.NullTime `db:"activated_at"`
	CalculatedAt sql.NullTime `db:"calculated_at"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
}

func (m gameweekTableModel) toDomain() gameweek.Gameweek {
	return gameweek.Gameweek{
		ID:           m.PublicID,
		Number:       m.Number,
		Name:         m.Name,
		Deadline:     m.Deadline.UTC(),
		Status:       gameweek.Status(m.Status),
		VotingOpen:   m.VotingOpen,
		ActivatedAt:  nullTimeToPtr(m.ActivatedAt),
		CalculatedAt: nullTimeToPtr(m.CalculatedAt),
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

// gameweekConstraintErrors maps unique constraints and indexes to the rule
// they enforce.
var gameweekConstraintErrors = map[string]error{
	"gameweeks_number_key":        gameweek.ErrDuplicateNumber,
	"gameweeks_single_active_idx": gameweek.ErrAnotherActive,
	"gameweeks_single_voting_idx": gameweek.ErrVotingOpenElse,
}
