package postgres

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-five/internal/domain/matchstat"
	"github.com/riskibarqy/fantasy-five/internal/domain/scoring"
)

type matchStatTableModel struct {
	GameweekID string    `db:"gameweek_public_id"`
	PlayerID   string    `db:"player_public_id"`
	Stat       []byte    `db:"stat"`
	Points     int       `db:"points"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (m matchStatTableModel) toDomain() (matchstat.Entry, error) {
	var stat scoring.Stat
	if len(m.Stat) > 0 {
		if err := sonic.Unmarshal(m.Stat, &stat); err != nil {
			return matchstat.Entry{}, fmt.Errorf("decode stat gameweek=%s player=%s: %w", m.GameweekID, m.PlayerID, err)
		}
	}
	return matchstat.Entry{
		GameweekID: m.GameweekID,
		PlayerID:   m.PlayerID,
		Stat:       stat,
		Points:     m.Points,
		CreatedAt:  m.CreatedAt.UTC(),
		UpdatedAt:  m.UpdatedAt.UTC(),
	}, nil
}
