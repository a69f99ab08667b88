package postgres

import (
	"time"

	"github.com/riskibarqy/fantasy-five/internal/domain/player"
)

type playerTableModel struct {
	ID          int64     `db:"id"`
	PublicID    string    `db:"public_id"`
	Name        string    `db:"name"`
	Position    string    `db:"position"`
	TeamName    string    `db:"team_name"`
	Price       int64     `db:"price"`
	TotalPoints int       `db:"total_points"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type playerInsertModel struct {
	PublicID    string    `db:"public_id"`
	Name        string    `db:"name"`
	Position    string    `db:"position"`
	TeamName    string    `db:"team_name"`
	Price       int64     `db:"price"`
	TotalPoints int       `db:"total_points"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:          m.PublicID,
		Name:        m.Name,
		Position:    player.Position(m.Position),
		TeamName:    m.TeamName,
		Price:       m.Price,
		TotalPoints: m.TotalPoints,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}
