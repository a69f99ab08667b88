package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/fantasy-five/internal/config"
	"github.com/riskibarqy/fantasy-five/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-five/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-five/internal/domain/matchstat"
	"github.com/riskibarqy/fantasy-five/internal/domain/minileague"
	"github.com/riskibarqy/fantasy-five/internal/domain/player"
	"github.com/riskibarqy/fantasy-five/internal/domain/settings"
	"github.com/riskibarqy/fantasy-five/internal/domain/vote"
	cacherepo "github.com/riskibarqy/fantasy-five/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fantasy-five/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-five/internal/infrastructure/repository/postgres"
	basecache "github.com/riskibarqy/fantasy-five/internal/platform/cache"
	"github.com/riskibarqy/fantasy-five/internal/platform/logging"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const seedGameweekCount = 10

type repositories struct {
	players   player.Repository
	gameweeks gameweek.Repository
	stats     matchstat.Repository
	fantasy   fantasy.Repository
	leagues   minileague.Repository
	votes     vote.Repository
	settings  settings.Repository
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, *sqlx.DB, error) {
	var (
		repos repositories
		db    *sqlx.DB
	)

	switch cfg.RepositoryDriver {
	case config.RepositoryPostgres:
		var err error
		db, err = openPostgres(ctx, cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		if cfg.SeedDemoData {
			if err := postgres.BootstrapSeed(ctx, db, gameweek.SeasonStart(time.Now()), seedGameweekCount); err != nil {
				closeDB(db, logger)
				return repositories{}, nil, err
			}
		}
		repos = repositories{
			players:   postgres.NewPlayerRepository(db),
			gameweeks: postgres.NewGameweekRepository(db),
			stats:     postgres.NewMatchStatRepository(db),
			fantasy:   postgres.NewFantasyRepository(db),
			leagues:   postgres.NewMiniLeagueRepository(db),
			votes:     postgres.NewVoteRepository(db),
			settings:  postgres.NewSettingsRepository(db),
		}
	case config.RepositoryMemory:
		var (
			players   []player.Player
			gameweeks []gameweek.Gameweek
		)
		if cfg.SeedDemoData {
			players = memory.SeedPlayers()
			gameweeks = memory.SeedGameweeks(gameweek.SeasonStart(time.Now()), seedGameweekCount)
		}
		repos = repositories{
			players:   memory.NewPlayerRepository(players),
			gameweeks: memory.NewGameweekRepository(gameweeks),
			stats:     memory.NewMatchStatRepository(),
			fantasy:   memory.NewFantasyRepository(),
			leagues:   memory.NewMiniLeagueRepository(),
			votes:     memory.NewVoteRepository(),
			settings:  memory.NewSettingsRepository(settings.Default()),
		}
	default:
		return repositories{}, nil, fmt.Errorf("unsupported repository driver %q", cfg.RepositoryDriver)
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.players = cacherepo.NewPlayerRepository(repos.players, store)
		repos.gameweeks = cacherepo.NewGameweekRepository(repos.gameweeks, store)
		repos.settings = cacherepo.NewSettingsRepository(repos.settings, store)
	}

	logger.Info("repositories ready",
		"driver", cfg.RepositoryDriver,
		"seeded", cfg.SeedDemoData,
		"cache_enabled", cfg.CacheEnabled,
	)
	return repos, db, nil
}

func openPostgres(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dbName := dbNameFromURL(cfg.DBURL)
	db, err := otelsqlx.Open("postgres", normalizeDBURL(cfg.DBURL, cfg.ServiceName),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbName),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns / 2)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	otelsql.ReportDBStatsMetrics(db.DB, otelsql.WithDBName(dbName))
	return db, nil
}

func closeDB(db *sqlx.DB, logger *logging.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Warn("close postgres", "error", err)
	}
}
