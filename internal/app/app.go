package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-five/internal/config"
	"github.com/riskibarqy/fantasy-five/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-five/internal/infrastructure/account/anubis"
	"github.com/riskibarqy/fantasy-five/internal/infrastructure/account/jwtauth"
	"github.com/riskibarqy/fantasy-five/internal/interfaces/httpapi"
	"github.com/riskibarqy/fantasy-five/internal/jobs"
	idgen "github.com/riskibarqy/fantasy-five/internal/platform/id"
	"github.com/riskibarqy/fantasy-five/internal/platform/logging"
	"github.com/riskibarqy/fantasy-five/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-five/internal/usecase"
)

// App owns the HTTP server, the background scheduler and the storage handle.
type App struct {
	cfg       config.Config
	logger    *logging.Logger
	server    *http.Server
	scheduler *jobs.Scheduler
	db        *sqlx.DB
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, db, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	verifier, err := newTokenVerifier(cfg, logger)
	if err != nil {
		closeDB(db, logger)
		return nil, err
	}

	rules := fantasy.DefaultRules()
	rules.BudgetCap = cfg.Rules.BudgetCap
	rules.FreeTransfers = cfg.Rules.FreeTransfers
	rules.TransferCost = cfg.Rules.TransferPenalty

	ids := idgen.NewUUIDGenerator()

	playerSvc := usecase.NewPlayerService(repos.players, ids, logger)
	gameweekSvc := usecase.NewGameweekService(repos.gameweeks, repos.fantasy, repos.stats, ids, cfg.ScoringWorkers, logger)
	matchStatSvc := usecase.NewMatchStatService(repos.gameweeks, repos.players, repos.stats, logger)
	squadSvc := usecase.NewSquadService(repos.settings, repos.gameweeks, repos.players, repos.fantasy, repos.stats, rules, ids, logger)
	leaderboardSvc := usecase.NewLeaderboardService(repos.fantasy, cfg.Rules.LeaderboardLimit)
	miniLeagueSvc := usecase.NewMiniLeagueService(repos.leagues, repos.fantasy, ids, idgen.NewRandomCodeGenerator(), logger)
	voteSvc := usecase.NewVoteService(repos.gameweeks, repos.players, repos.votes, matchStatSvc, ids, logger)
	settingsSvc := usecase.NewSettingsService(repos.settings, logger)
	dashboardSvc := usecase.NewDashboardService(repos.settings, repos.gameweeks, repos.fantasy, repos.stats, repos.players)
	reconcileSvc := usecase.NewReconcileService(repos.players, repos.stats, repos.fantasy, logger)

	handler := httpapi.NewHandler(
		playerSvc,
		gameweekSvc,
		matchStatSvc,
		squadSvc,
		leaderboardSvc,
		miniLeagueSvc,
		voteSvc,
		settingsSvc,
		dashboardSvc,
		reconcileSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, verifier, settingsSvc, logger, httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
	})

	scheduler, err := jobs.NewScheduler(jobs.Config{
		ReconcileEnabled: cfg.JobReconcileEnabled,
		ReconcileCron:    cfg.JobReconcileCron,
		Timeout:          cfg.JobTimeout,
		Location:         time.UTC,
	}, reconcileSvc, logger)
	if err != nil {
		closeDB(db, logger)
		return nil, err
	}

	return &App{
		cfg:    cfg,
		logger: logger,
		server: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           router,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      cfg.WriteTimeout,
		},
		scheduler: scheduler,
		db:        db,
	}, nil
}

func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run serves HTTP and runs scheduled jobs until ctx is cancelled, then shuts
// both down within the configured timeout.
func (a *App) Run(ctx context.Context) error {
	if err := a.scheduler.Start(); err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "addr", a.cfg.HTTPAddr, "repository", a.cfg.RepositoryDriver, "auth", a.cfg.AuthProvider)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err, ok := <-serveErr:
		if ok {
			runErr = fmt.Errorf("http server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("graceful shutdown failed: %w", err))
	}
	if err := a.scheduler.Stop(); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("stop scheduler: %w", err))
	}
	closeDB(a.db, a.logger)

	a.logger.Info("http server stopped")
	return runErr
}

func newTokenVerifier(cfg config.Config, logger *logging.Logger) (httpapi.TokenVerifier, error) {
	switch cfg.AuthProvider {
	case config.AuthProviderAnubis:
		var cacheTTL time.Duration
		if cfg.CacheEnabled {
			cacheTTL = cfg.CacheTTL
		}
		return anubis.NewClient(anubis.ClientConfig{
			HTTPClient:     &http.Client{Timeout: cfg.AnubisTimeout},
			BaseURL:        cfg.AnubisBaseURL,
			IntrospectPath: cfg.AnubisIntrospectURL,
			AdminKey:       cfg.AnubisAdminKey,
			AdminRole:      cfg.AnubisAdminRole,
			CacheTTL:       cacheTTL,
			CircuitBreaker: resilience.BreakerConfig{
				Enabled:          cfg.AnubisCircuitEnabled,
				FailureThreshold: cfg.AnubisCircuitFailureCount,
				OpenTimeout:      cfg.AnubisCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.AnubisCircuitHalfOpenMaxReq,
			},
			Logger: logger,
		}), nil
	case config.AuthProviderJWT:
		verifier, err := jwtauth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTLeeway)
		if err != nil {
			return nil, fmt.Errorf("build jwt verifier: %w", err)
		}
		return verifier, nil
	default:
		return nil, fmt.Errorf("unsupported auth provider %q", cfg.AuthProvider)
	}
}
