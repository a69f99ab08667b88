package postgres

import (
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/fantasy-five/internal/domain/fantasy"
)

type teamTableModel struct {
	ID              int64     `db:"id"`
	PublicID        string    `db:"public_id"`
	UserID          string    `db:"user_id"`
	Name            string    `db:"name"`
	ManagerName     string    `db:"manager_name"`
	BudgetRemaining int64     `db:"budget_remaining"`
	TotalPoints     int       `db:"total_points"`
	FreeTransfers   int       `db:"free_transfers"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type teamInsertModel struct {
	PublicID        string    `db:"public_id"`
	UserID          string    `db:"user_id"`
	Name            string    `db:"name"`
	ManagerName     string    `db:"manager_name"`
	BudgetRemaining int64     `db:"budget_remaining"`
	TotalPoints     int       `db:"total_points"`
	FreeTransfers   int       `db:"free_transfers"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (m teamTableModel) toDomain() fantasy.Team {
	return fantasy.Team{
		ID:              m.PublicID,
		UserID:          m.UserID,
		Name:            m.Name,
		ManagerName:     m.ManagerName,
		BudgetRemaining: m.BudgetRemaining,
		TotalPoints:     m.TotalPoints,
		FreeTransfers:   m.FreeTransfers,
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
}

type selectionTableModel struct {
	TeamID          string         `db:"team_public_id"`
	GameweekID      string         `db:"gameweek_public_id"`
	GameweekNumber  int            `db:"gameweek_number"`
	PlayerIDs       pq.StringArray `db:"player_ids"`
	CaptainID       string         `db:"captain_id"`
	TransfersMade   int            `db:"transfers_made"`
	TransferPenalty int            `db:"transfer_penalty"`
	SquadCost       int64          `db:"squad_cost"`
	GameweekPoints  int            `db:"gameweek_points"`
	Scored          bool           `db:"scored"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

func selectionRow(s fantasy.Selection) selectionTableModel {
	return selectionTableModel{
		TeamID:          s.TeamID,
		GameweekID:      s.GameweekID,
		GameweekNumber:  s.GameweekNumber,
		PlayerIDs:       pq.StringArray(append([]string(nil), s.PlayerIDs...)),
		CaptainID:       s.CaptainID,
		TransfersMade:   s.TransfersMade,
		TransferPenalty: s.TransferPenalty,
		SquadCost:       s.SquadCost,
		GameweekPoints:  s.GameweekPoints,
		Scored:          s.Scored,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func (m selectionTableModel) toDomain() fantasy.Selection {
	return fantasy.Selection{
		TeamID:          m.TeamID,
		GameweekID:      m.GameweekID,
		GameweekNumber:  m.GameweekNumber,
		PlayerIDs:       append([]string(nil), m.PlayerIDs...),
		CaptainID:       m.CaptainID,
		TransfersMade:   m.TransfersMade,
		TransferPenalty: m.TransferPenalty,
		SquadCost:       m.SquadCost,
		GameweekPoints:  m.GameweekPoints,
		Scored:          m.Scored,
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
}
