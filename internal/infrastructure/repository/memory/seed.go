package memory

import (
	"strconv"
	"time"

	"github.com/riskibarqy/fantasy-five/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-five/internal/domain/player"
)

var seedCreatedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

// SeedPlayers is the demo catalogue used by the memory driver and tests.
func SeedPlayers() []player.Player {
	p := func(id, name, team string, pos player.Position, price int64) player.Player {
		return player.Player{
			ID:        id,
			Name:      name,
			Position:  pos,
			TeamName:  team,
			Price:     price,
			IsActive:  true,
			CreatedAt: seedCreatedAt,
			UpdatedAt: seedCreatedAt,
		}
	}

	return []player.Player{
		p("gk-01", "Andritany Ardhiyasa", "Persija Jakarta", player.PositionGoalkeeper, 90),
		p("gk-02", "Teja Paku Alam", "Persib Bandung", player.PositionGoalkeeper, 85),
		p("def-01", "Hansamu Yama", "Persija Jakarta", player.PositionDefender, 88),
		p("def-02", "Nick Kuipers", "Persib Bandung", player.PositionDefender, 92),
		p("def-03", "Dusan Stevanovic", "Persebaya Surabaya", player.PositionDefender, 84),
		p("def-04", "Ricky Fajrin", "Bali United", player.PositionDefender, 80),
		p("mid-01", "Maciej Gajos", "Persija Jakarta", player.PositionMidfielder, 98),
		p("mid-02", "Marc Klok", "Persib Bandung", player.PositionMidfielder, 99),
		p("mid-03", "Bruno Moreira", "Persebaya Surabaya", player.PositionMidfielder, 95),
		p("mid-04", "Eber Bessa", "Bali United", player.PositionMidfielder, 97),
		p("att-01", "Gustavo Almeida", "Persija Jakarta", player.PositionAttacker, 105),
		p("att-02", "David da Silva", "Persib Bandung", player.PositionAttacker, 108),
		p("att-03", "Paulo Henrique", "Persebaya Surabaya", player.PositionAttacker, 100),
		p("att-04", "Mitsuru Maruoka", "Bali United", player.PositionAttacker, 90),
	}
}

// SeedGameweeks returns a short upcoming season starting at start.
func SeedGameweeks(start time.Time, count int) []gameweek.Gameweek {
	out := make([]gameweek.Gameweek, 0, count)
	for i := 1; i <= count; i++ {
		out = append(out, gameweek.Gameweek{
			ID:        "gw-" + strconv.Itoa(i),
			Number:    i,
			Name:      "Gameweek " + strconv.Itoa(i),
			Deadline:  start.AddDate(0, 0, 7*(i-1)),
			Status:    gameweek.StatusUpcoming,
			CreatedAt: seedCreatedAt,
			UpdatedAt: seedCreatedAt,
		})
	}
	return out
}
