package httpapi

import (
	"time"

	"github.com/riskibarqy/fantasy-five/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-five/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-five/internal/domain/matchstat"
	"github.com/riskibarqy/fantasy-five/internal/domain/minileague"
	"github.com/riskibarqy/fantasy-five/internal/domain/player"
	"github.com/riskibarqy/fantasy-five/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-five/internal/domain/settings"
	"github.com/riskibarqy/fantasy-five/internal/domain/vote"
	"github.com/riskibarqy/fantasy-five/internal/usecase"
)

type playerDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Position    string  `json:"position"`
	TeamName    string  `json:"team_name,omitempty"`
	Price       float64 `json:"price"`
	TotalPoints int     `json:"total_points"`
	IsActive    bool    `json:"is_active"`
}

type gameweekDTO struct {
	ID           string `json:"id"`
	Number       int    `json:"number"`
	Name         string `json:"name"`
	Deadline     string `json:"deadline"`
	Status       string `json:"status"`
	VotingOpen   bool   `json:"voting_open"`
	ActivatedAt  string `json:"activated_at,omitempty"`
	CalculatedAt string `json:"calculated_at,omitempty"`
}

type activateResultDTO struct {
	Gameweek   gameweekDTO `json:"gameweek"`
	RolledOver int         `json:"rolled_over"`
}

type teamScoreDTO struct {
	TeamID          string `json:"team_id"`
	GrossPoints     int    `json:"gross_points"`
	TransferPenalty int    `json:"transfer_penalty"`
	Points          int    `json:"points"`
	Status          string `json:"status"`
	Message         string `json:"message,omitempty"`
}

type calculateResultDTO struct {
	Gameweek     gameweekDTO    `json:"gameweek"`
	WorkerCount  int            `json:"worker_count"`
	TeamCount    int            `json:"team_count"`
	SuccessCount int            `json:"success_count"`
	SkippedCount int            `json:"skipped_count"`
	FailedCount  int            `json:"failed_count"`
	Teams        []teamScoreDTO `json:"teams"`
}

type matchStatDTO struct {
	GameweekID string       `json:"gameweek_id"`
	PlayerID   string       `json:"player_id"`
	Stat       scoring.Stat `json:"stat"`
	Points     int          `json:"points"`
	UpdatedAt  string       `json:"updated_at"`
}

type statLineDTO struct {
	Player playerDTO    `json:"player"`
	Stat   scoring.Stat `json:"stat"`
	Points int          `json:"points"`
}

type breakdownDTO struct {
	GameweekID string                  `json:"gameweek_id"`
	Player     playerDTO               `json:"player"`
	Stat       scoring.Stat            `json:"stat"`
	Items      []scoring.BreakdownItem `json:"items"`
	Total      int                     `json:"total"`
	Points     int                     `json:"points"`
}

type teamDTO struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	ManagerName     string  `json:"manager_name"`
	BudgetRemaining float64 `json:"budget_remaining"`
	TotalPoints     int     `json:"total_points"`
	FreeTransfers   int     `json:"free_transfers"`
}

type selectionDTO struct {
	GameweekID      string   `json:"gameweek_id"`
	GameweekNumber  int      `json:"gameweek_number"`
	PlayerIDs       []string `json:"player_ids"`
	CaptainID       string   `json:"captain_id"`
	TransfersMade   int      `json:"transfers_made"`
	TransferPenalty int      `json:"transfer_penalty"`
	SquadCost       float64  `json:"squad_cost"`
	GameweekPoints  int      `json:"gameweek_points"`
	Scored          bool     `json:"scored"`
}

type teamViewDTO struct {
	Team      teamDTO       `json:"team"`
	Gameweek  *gameweekDTO  `json:"gameweek,omitempty"`
	Selection *selectionDTO `json:"selection,omitempty"`
	Players   []playerDTO   `json:"players"`
}

type squadPlayerPointsDTO struct {
	Player     playerDTO `json:"player"`
	Points     int       `json:"points"`
	HasStats   bool      `json:"has_stats"`
	IsCaptain  bool      `json:"is_captain"`
	Multiplier int       `json:"multiplier"`
	Counted    int       `json:"counted"`
}

type gameweekTeamDTO struct {
	Team            teamDTO                `json:"team"`
	Gameweek        gameweekDTO            `json:"gameweek"`
	Selection       selectionDTO           `json:"selection"`
	Players         []squadPlayerPointsDTO `json:"players"`
	GrossPoints     int                    `json:"gross_points"`
	TransferPenalty int                    `json:"transfer_penalty"`
	Points          int                    `json:"points"`
	Fallback        bool                   `json:"fallback"`
}

type standingDTO struct {
	Rank        int    `json:"rank"`
	TeamID      string `json:"team_id,omitempty"`
	TeamName    string `json:"team_name"`
	ManagerName string `json:"manager_name"`
	TotalPoints int    `json:"total_points"`
}

type miniLeagueDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	JoinCode  string `json:"join_code"`
	CreatedBy string `json:"created_by"`
	CreatedAt string `json:"created_at"`
}

type miniLeagueStandingsDTO struct {
	League    miniLeagueDTO `json:"league"`
	Standings []standingDTO `json:"standings"`
}

type voteDTO struct {
	ID         string `json:"id"`
	GameweekID string `json:"gameweek_id"`
	FirstID    string `json:"first_id"`
	SecondID   string `json:"second_id"`
	ThirdID    string `json:"third_id"`
	CreatedAt  string `json:"created_at"`
}

type myVoteDTO struct {
	HasVoted bool     `json:"has_voted"`
	Vote     *voteDTO `json:"vote,omitempty"`
}

type voteResultDTO struct {
	Player      playerDTO `json:"player"`
	Score       int       `json:"score"`
	FirstPlaces int       `json:"first_places"`
	Votes       int       `json:"votes"`
}

type closeVotingDTO struct {
	Gameweek    gameweekDTO     `json:"gameweek"`
	Results     []voteResultDTO `json:"results"`
	MVPPlayerID string          `json:"mvp_player_id,omitempty"`
	Awarded     bool            `json:"awarded"`
}

type settingsDTO struct {
	AllowTransfers     bool   `json:"allow_transfers"`
	ShowDashboardStats bool   `json:"show_dashboard_stats"`
	MaintenanceMode    bool   `json:"maintenance_mode"`
	UpdatedAt          string `json:"updated_at,omitempty"`
}

type ownershipDTO struct {
	Player  playerDTO `json:"player"`
	Owners  int       `json:"owners"`
	Percent float64   `json:"percent"`
}

type topScorerDTO struct {
	Player playerDTO `json:"player"`
	Points int       `json:"points"`
}

type dashboardHighlightsDTO struct {
	Visible         bool           `json:"visible"`
	CurrentGameweek *gameweekDTO   `json:"current_gameweek,omitempty"`
	MostOwned       []ownershipDTO `json:"most_owned"`
	LastFinished    *gameweekDTO   `json:"last_finished,omitempty"`
	TopScorers      []topScorerDTO `json:"top_scorers"`
}

type reconcileResultDTO struct {
	PlayersChecked int   `json:"players_checked"`
	PlayersFixed   int   `json:"players_fixed"`
	TeamsChecked   int   `json:"teams_checked"`
	TeamsFixed     int   `json:"teams_fixed"`
	DurationMS     int64 `json:"duration_ms"`
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:          v.ID,
		Name:        v.Name,
		Position:    string(v.Position),
		TeamName:    v.TeamName,
		Price:       priceToDecimal(v.Price),
		TotalPoints: v.TotalPoints,
		IsActive:    v.IsActive,
	}
}

func gameweekToDTO(v gameweek.Gameweek) gameweekDTO {
	return gameweekDTO{
		ID:           v.ID,
		Number:       v.Number,
		Name:         v.Name,
		Deadline:     formatTime(v.Deadline),
		Status:       string(v.Status),
		VotingOpen:   v.VotingOpen,
		ActivatedAt:  formatOptionalTime(v.ActivatedAt),
		CalculatedAt: formatOptionalTime(v.CalculatedAt),
	}
}

func calculateResultToDTO(v usecase.CalculateResult) calculateResultDTO {
	teams := make([]teamScoreDTO, 0, len(v.Teams))
	for _, t := range v.Teams {
		teams = append(teams, teamScoreDTO{
			TeamID:          t.TeamID,
			GrossPoints:     t.GrossPoints,
			TransferPenalty: t.TransferPenalty,
			Points:          t.Points,
			Status:          t.Status,
			Message:         t.Message,
		})
	}
	return calculateResultDTO{
		Gameweek:     gameweekToDTO(v.Gameweek),
		WorkerCount:  v.WorkerCount,
		TeamCount:    v.TeamCount,
		SuccessCount: v.SuccessCount,
		SkippedCount: v.SkippedCount,
		FailedCount:  v.FailedCount,
		Teams:        teams,
	}
}

func matchStatToDTO(v matchstat.Entry) matchStatDTO {
	return matchStatDTO{
		GameweekID: v.GameweekID,
		PlayerID:   v.PlayerID,
		Stat:       v.Stat,
		Points:     v.Points,
		UpdatedAt:  formatTime(v.UpdatedAt),
	}
}

func teamToDTO(v fantasy.Team) teamDTO {
	return teamDTO{
		ID:              v.ID,
		Name:            v.Name,
		ManagerName:     v.ManagerName,
		BudgetRemaining: priceToDecimal(v.BudgetRemaining),
		TotalPoints:     v.TotalPoints,
		FreeTransfers:   v.FreeTransfers,
	}
}

func selectionToDTO(v fantasy.Selection) selectionDTO {
	playerIDs := make([]string, len(v.PlayerIDs))
	copy(playerIDs, v.PlayerIDs)
	return selectionDTO{
		GameweekID:      v.GameweekID,
		GameweekNumber:  v.GameweekNumber,
		PlayerIDs:       playerIDs,
		CaptainID:       v.CaptainID,
		TransfersMade:   v.TransfersMade,
		TransferPenalty: v.TransferPenalty,
		SquadCost:       priceToDecimal(v.SquadCost),
		GameweekPoints:  v.GameweekPoints,
		Scored:          v.Scored,
	}
}

func teamViewToDTO(v usecase.TeamView) teamViewDTO {
	out := teamViewDTO{
		Team:    teamToDTO(v.Team),
		Players: make([]playerDTO, 0, len(v.Players)),
	}
	if v.Gameweek != nil {
		gw := gameweekToDTO(*v.Gameweek)
		out.Gameweek = &gw
	}
	if v.Selection != nil {
		s := selectionToDTO(*v.Selection)
		out.Selection = &s
	}
	for _, p := range v.Players {
		out.Players = append(out.Players, playerToDTO(p))
	}
	return out
}

func gameweekTeamToDTO(v usecase.GameweekTeamView) gameweekTeamDTO {
	players := make([]squadPlayerPointsDTO, 0, len(v.Players))
	for _, p := range v.Players {
		players = append(players, squadPlayerPointsDTO{
			Player:     playerToDTO(p.Player),
			Points:     p.Points,
			HasStats:   p.HasStats,
			IsCaptain:  p.IsCaptain,
			Multiplier: p.Multiplier,
			Counted:    p.Counted,
		})
	}
	return gameweekTeamDTO{
		Team:            teamToDTO(v.Team),
		Gameweek:        gameweekToDTO(v.Gameweek),
		Selection:       selectionToDTO(v.Selection),
		Players:         players,
		GrossPoints:     v.GrossPoints,
		TransferPenalty: v.Selection.TransferPenalty,
		Points:          v.Points,
		Fallback:        v.Fallback,
	}
}

func standingsToDTO(items []minileague.Standing) []standingDTO {
	out := make([]standingDTO, 0, len(items))
	for _, s := range items {
		out = append(out, standingDTO{
			Rank:        s.Rank,
			TeamID:      s.TeamID,
			TeamName:    s.TeamName,
			ManagerName: s.ManagerName,
			TotalPoints: s.TotalPoints,
		})
	}
	return out
}

func miniLeagueToDTO(v minileague.League) miniLeagueDTO {
	return miniLeagueDTO{
		ID:        v.ID,
		Name:      v.Name,
		JoinCode:  v.JoinCode,
		CreatedBy: v.CreatedBy,
		CreatedAt: formatTime(v.CreatedAt),
	}
}

func voteToDTO(v vote.Vote) voteDTO {
	return voteDTO{
		ID:         v.ID,
		GameweekID: v.GameweekID,
		FirstID:    v.FirstID,
		SecondID:   v.SecondID,
		ThirdID:    v.ThirdID,
		CreatedAt:  formatTime(v.CreatedAt),
	}
}

func voteResultsToDTO(lines []usecase.VoteResultLine) []voteResultDTO {
	out := make([]voteResultDTO, 0, len(lines))
	for _, line := range lines {
		p := playerToDTO(line.Player)
		if p.ID == "" {
			p.ID = line.PlayerID
		}
		out = append(out, voteResultDTO{
			Player:      p,
			Score:       line.Score,
			FirstPlaces: line.FirstPlaces,
			Votes:       line.Votes,
		})
	}
	return out
}

func settingsToDTO(v settings.Settings) settingsDTO {
	return settingsDTO{
		AllowTransfers:     v.AllowTransfers,
		ShowDashboardStats: v.ShowDashboardStats,
		MaintenanceMode:    v.MaintenanceMode,
		UpdatedAt:          formatTime(v.UpdatedAt),
	}
}

func dashboardHighlightsToDTO(v usecase.DashboardHighlights) dashboardHighlightsDTO {
	out := dashboardHighlightsDTO{
		Visible:    v.Visible,
		MostOwned:  make([]ownershipDTO, 0, len(v.MostOwned)),
		TopScorers: make([]topScorerDTO, 0, len(v.TopScorers)),
	}
	if v.CurrentGameweek != nil {
		gw := gameweekToDTO(*v.CurrentGameweek)
		out.CurrentGameweek = &gw
	}
	if v.LastFinished != nil {
		gw := gameweekToDTO(*v.LastFinished)
		out.LastFinished = &gw
	}
	for _, line := range v.MostOwned {
		out.MostOwned = append(out.MostOwned, ownershipDTO{
			Player:  playerToDTO(line.Player),
			Owners:  line.Owners,
			Percent: line.Percent,
		})
	}
	for _, line := range v.TopScorers {
		out.TopScorers = append(out.TopScorers, topScorerDTO{
			Player: playerToDTO(line.Player),
			Points: line.Points,
		})
	}
	return out
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

func formatOptionalTime(v *time.Time) string {
	if v == nil {
		return ""
	}
	return formatTime(*v)
}
