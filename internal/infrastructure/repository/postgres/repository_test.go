package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/fantasy-five/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-five/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-five/internal/domain/minileague"
	"github.com/riskibarqy/fantasy-five/internal/domain/player"
	"github.com/riskibarqy/fantasy-five/internal/domain/settings"
	"github.com/riskibarqy/fantasy-five/internal/domain/vote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RepositoryTestSuite struct {
	suite.Suite
	db   *sqlx.DB
	mock sqlmock.Sqlmock
	ctx  context.Context
	now  time.Time
}

func (s *RepositoryTestSuite) SetupTest() {
	mockDB, mock, err := sqlmock.New()
	require.NoError(s.T(), err)

	s.db = sqlx.NewDb(mockDB, "postgres")
	s.mock = mock
	s.ctx = context.Background()
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (s *RepositoryTestSuite) TearDownTest() {
	assert.NoError(s.T(), s.mock.ExpectationsWereMet())
	s.db.Close()
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func (s *RepositoryTestSuite) gameweekRows() *sqlmock.Rows {
	return sqlmock.NewRows(gameweekSelectColumns)
}

func (s *RepositoryTestSuite) TestGameweekGetActive() {
	activated := s.now.Add(-time.Hour)
	s.mock.ExpectQuery(`SELECT .+ FROM gameweeks WHERE status = \$1 ORDER BY number DESC LIMIT 1`).
		WithArgs("active").
		WillReturnRows(s.gameweekRows().AddRow(
			int64(1), "gw-1", 1, "Gameweek 1", s.now.Add(48*time.Hour), "active", false,
			activated, nil, s.now, s.now,
		))

	got, exists, err := NewGameweekRepository(s.db).GetActive(s.ctx)

	require.NoError(s.T(), err)
	assert.True(s.T(), exists)
	assert.Equal(s.T(), "gw-1", got.ID)
	assert.Equal(s.T(), gameweek.StatusActive, got.Status)
	require.NotNil(s.T(), got.ActivatedAt)
	assert.True(s.T(), got.ActivatedAt.Equal(activated))
	assert.Nil(s.T(), got.CalculatedAt)
}

func (s *RepositoryTestSuite) TestGameweekGetActiveNone() {
	s.mock.ExpectQuery(`SELECT .+ FROM gameweeks WHERE status = \$1`).
		WithArgs("active").
		WillReturnRows(s.gameweekRows())

	_, exists, err := NewGameweekRepository(s.db).GetActive(s.ctx)

	require.NoError(s.T(), err)
	assert.False(s.T(), exists)
}

func (s *RepositoryTestSuite) TestGameweekUpdateMapsUniqueIndexes() {
	cases := map[string]error{
		"gameweeks_single_active_idx": gameweek.ErrAnotherActive,
		"gameweeks_single_voting_idx": gameweek.ErrVotingOpenElse,
		"gameweeks_number_key":        gameweek.ErrDuplicateNumber,
	}
	for constraint, want := range cases {
		s.mock.ExpectExec(`UPDATE gameweeks`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: constraint})

		err := NewGameweekRepository(s.db).Update(s.ctx, gameweek.Gameweek{ID: "gw-2", Number: 2, Status: gameweek.StatusActive})

		assert.ErrorIs(s.T(), err, want, constraint)
	}
}

func (s *RepositoryTestSuite) TestGameweekUpdateMissingRow() {
	s.mock.ExpectExec(`UPDATE gameweeks`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewGameweekRepository(s.db).Update(s.ctx, gameweek.Gameweek{ID: "gw-9"})

	assert.ErrorIs(s.T(), err, sql.ErrNoRows)
}

func (s *RepositoryTestSuite) TestMatchStatGetDecodesStat() {
	s.mock.ExpectQuery(`SELECT .+ FROM match_stats WHERE gameweek_public_id = \$1 AND player_public_id = \$2`).
		WithArgs("gw-1", "att-01").
		WillReturnRows(sqlmock.NewRows(matchStatSelectColumns).AddRow(
			"gw-1", "att-01", []byte(`{"minutes_played":90,"goals":2,"assists":1,"own_goals":1}`), 10, s.now, s.now,
		))

	got, exists, err := NewMatchStatRepository(s.db).Get(s.ctx, "gw-1", "att-01")

	require.NoError(s.T(), err)
	assert.True(s.T(), exists)
	assert.Equal(s.T(), 2, got.Stat.Goals)
	assert.Equal(s.T(), 1, got.Stat.OwnGoals)
	assert.Equal(s.T(), 90, got.Stat.MinutesPlayed)
	assert.Equal(s.T(), 10, got.Points)
}

func (s *RepositoryTestSuite) TestMatchStatTotalsByPlayer() {
	s.mock.ExpectQuery(`SELECT player_public_id, SUM\(points\) AS total FROM match_stats`).
		WillReturnRows(sqlmock.NewRows([]string{"player_public_id", "total"}).
			AddRow("gk-01", 13).
			AddRow("att-01", -2))

	got, err := NewMatchStatRepository(s.db).TotalsByPlayer(s.ctx)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), map[string]int{"gk-01": 13, "att-01": -2}, got)
}

func (s *RepositoryTestSuite) TestFantasyLatestSelectionBefore() {
	s.mock.ExpectQuery(`SELECT .+ FROM fantasy_selections WHERE team_public_id = \$1 AND gameweek_number < \$2 ORDER BY gameweek_number DESC LIMIT 1`).
		WithArgs("team-1", 3).
		WillReturnRows(sqlmock.NewRows(selectionSelectColumns).AddRow(
			"team-1", "gw-2", 2, []byte(`{gk-01,def-01,mid-01,mid-02,att-01}`), "att-01",
			2, 4, int64(480), 20, true, s.now, s.now,
		))

	got, exists, err := NewFantasyRepository(s.db).GetLatestSelectionBefore(s.ctx, "team-1", 3)

	require.NoError(s.T(), err)
	assert.True(s.T(), exists)
	assert.Equal(s.T(), []string{"gk-01", "def-01", "mid-01", "mid-02", "att-01"}, got.PlayerIDs)
	assert.Equal(s.T(), "att-01", got.CaptainID)
	assert.Equal(s.T(), 4, got.TransferPenalty)
	assert.True(s.T(), got.Scored)
}

func (s *RepositoryTestSuite) TestFantasyUpsertSelection() {
	s.mock.ExpectExec(`INSERT INTO fantasy_selections .+ ON CONFLICT \(team_public_id, gameweek_public_id\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := NewFantasyRepository(s.db).UpsertSelection(s.ctx, fantasy.Selection{
		TeamID:     "team-1",
		GameweekID: "gw-1",
		PlayerIDs:  []string{"gk-01", "def-01", "mid-01", "mid-02", "att-01"},
		CaptainID:  "att-01",
		CreatedAt:  s.now,
		UpdatedAt:  s.now,
	})

	assert.NoError(s.T(), err)
}

func (s *RepositoryTestSuite) TestFantasyCreateTeamDuplicateUser() {
	s.mock.ExpectExec(`INSERT INTO fantasy_teams`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "fantasy_teams_user_id_key"})

	err := NewFantasyRepository(s.db).CreateTeam(s.ctx, fantasy.Team{ID: "team-2", UserID: "user-1", Name: "Second FC"})

	assert.ErrorIs(s.T(), err, fantasy.ErrTeamExists)
}

func (s *RepositoryTestSuite) TestFantasyCreateTeamOtherUniqueViolation() {
	s.mock.ExpectExec(`INSERT INTO fantasy_teams`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "fantasy_teams_public_id_key"})

	err := NewFantasyRepository(s.db).CreateTeam(s.ctx, fantasy.Team{ID: "team-1", UserID: "user-9", Name: "Other FC"})

	require.Error(s.T(), err)
	assert.NotErrorIs(s.T(), err, fantasy.ErrTeamExists)
}

func (s *RepositoryTestSuite) TestFantasySaveSquadCommits() {
	s.mock.ExpectBegin()
	s.mock.ExpectExec(`INSERT INTO fantasy_selections .+ ON CONFLICT`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectExec(`UPDATE fantasy_teams`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	err := NewFantasyRepository(s.db).SaveSquad(s.ctx,
		fantasy.Team{ID: "team-1", Name: "First FC", BudgetRemaining: 20, UpdatedAt: s.now},
		fantasy.Selection{TeamID: "team-1", GameweekID: "gw-1", PlayerIDs: []string{"gk-01"}, CaptainID: "gk-01", CreatedAt: s.now, UpdatedAt: s.now},
	)

	assert.NoError(s.T(), err)
}

func (s *RepositoryTestSuite) TestFantasySaveSquadRollsBackWhenTeamMissing() {
	s.mock.ExpectBegin()
	s.mock.ExpectExec(`INSERT INTO fantasy_selections`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectExec(`UPDATE fantasy_teams`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectRollback()

	err := NewFantasyRepository(s.db).SaveSquad(s.ctx,
		fantasy.Team{ID: "ghost", UpdatedAt: s.now},
		fantasy.Selection{TeamID: "ghost", GameweekID: "gw-1", CreatedAt: s.now, UpdatedAt: s.now},
	)

	assert.ErrorIs(s.T(), err, sql.ErrNoRows)
}

func (s *RepositoryTestSuite) TestFantasyRefreshTotalPoints() {
	s.mock.ExpectQuery(`UPDATE fantasy_teams t SET total_points`).
		WithArgs("team-1").
		WillReturnRows(sqlmock.NewRows([]string{"total_points"}).AddRow(57))

	got, err := NewFantasyRepository(s.db).RefreshTotalPoints(s.ctx, "team-1")

	require.NoError(s.T(), err)
	assert.Equal(s.T(), 57, got)
}

func (s *RepositoryTestSuite) TestFantasyListTeamsByUserIDsEmpty() {
	got, err := NewFantasyRepository(s.db).ListTeamsByUserIDs(s.ctx, nil)

	require.NoError(s.T(), err)
	assert.Empty(s.T(), got)
}

func (s *RepositoryTestSuite) TestPlayerListFiltersActiveByPosition() {
	s.mock.ExpectQuery(`SELECT .+ FROM players WHERE is_active = \$1 AND position = \$2 ORDER BY CASE position`).
		WithArgs(true, "GK").
		WillReturnRows(sqlmock.NewRows(playerSelectColumns).AddRow(
			int64(1), "gk-01", "Andritany", "GK", "Persija Jakarta", int64(90), 13, true, s.now, s.now,
		))

	got, err := NewPlayerRepository(s.db).List(s.ctx, player.Filter{Position: player.PositionGoalkeeper})

	require.NoError(s.T(), err)
	require.Len(s.T(), got, 1)
	assert.Equal(s.T(), "gk-01", got[0].ID)
	assert.Equal(s.T(), int64(90), got[0].Price)
}

func (s *RepositoryTestSuite) TestPlayerUpdateTotalPoints() {
	s.mock.ExpectExec(`UPDATE players SET total_points = \$1`).
		WithArgs(21, "mid-01").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := NewPlayerRepository(s.db).UpdateTotalPoints(s.ctx, "mid-01", 21)

	assert.NoError(s.T(), err)
}

func (s *RepositoryTestSuite) TestVoteCreateDuplicate() {
	s.mock.ExpectExec(`INSERT INTO mvp_votes`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "mvp_votes_gameweek_user_key"})

	err := NewVoteRepository(s.db).Create(s.ctx, vote.Vote{ID: "v-1", GameweekID: "gw-1", UserID: "u-1"})

	assert.True(s.T(), errors.Is(err, vote.ErrAlreadyVoted))
}

func (s *RepositoryTestSuite) TestMiniLeagueAddMemberDuplicate() {
	s.mock.ExpectExec(`INSERT INTO mini_league_members`).
		WithArgs("ml-1", "u-1", s.now).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "mini_league_members_pkey"})

	err := NewMiniLeagueRepository(s.db).AddMember(s.ctx, minileague.Membership{LeagueID: "ml-1", UserID: "u-1", JoinedAt: s.now})

	assert.ErrorIs(s.T(), err, minileague.ErrAlreadyMember)
}

func (s *RepositoryTestSuite) TestMiniLeagueCreateDuplicateCode() {
	s.mock.ExpectExec(`INSERT INTO mini_leagues`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "mini_leagues_join_code_key"})

	err := NewMiniLeagueRepository(s.db).Create(s.ctx, minileague.League{ID: "ml-1", Name: "Office", JoinCode: "ABCD2345", CreatedBy: "u-1"})

	assert.ErrorIs(s.T(), err, minileague.ErrDuplicateCode)
}

func (s *RepositoryTestSuite) TestSettingsGetDefaultsWhenMissing() {
	s.mock.ExpectQuery(`SELECT allow_transfers, show_dashboard_stats, maintenance_mode, updated_at FROM app_settings`).
		WillReturnRows(sqlmock.NewRows([]string{"allow_transfers", "show_dashboard_stats", "maintenance_mode", "updated_at"}))

	got, err := NewSettingsRepository(s.db).Get(s.ctx)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), settings.Default(), got)
}

func (s *RepositoryTestSuite) TestBootstrapSeedSkipsWhenPopulated() {
	s.mock.ExpectQuery(`SELECT COUNT\(1\) FROM players`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(14))

	err := BootstrapSeed(s.ctx, s.db, s.now, 6)

	assert.NoError(s.T(), err)
}
