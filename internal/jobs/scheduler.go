package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/riskibarqy/fantasy-five/internal/platform/logging"
	"github.com/riskibarqy/fantasy-five/internal/usecase"
)

const ReconcileTotalsJob = "reconcile-totals"

// Reconciler rebuilds cached season totals.
type Reconciler interface {
	ReconcileTotals(ctx context.Context) (usecase.ReconcileResult, error)
}

type Config struct {
	ReconcileEnabled bool
	ReconcileCron    string
	Timeout          time.Duration
	Location         *time.Location
}

// Scheduler runs background maintenance jobs in-process.
type Scheduler struct {
	s          gocron.Scheduler
	cfg        Config
	reconciler Reconciler
	logger     *logging.Logger
}

func NewScheduler(cfg Config, reconciler Reconciler, logger *logging.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}

	var opts []gocron.SchedulerOption
	if cfg.Location != nil {
		opts = append(opts, gocron.WithLocation(cfg.Location))
	}
	s, err := gocron.NewScheduler(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:          s,
		cfg:        cfg,
		reconciler: reconciler,
		logger:     logger.Named("scheduler"),
	}, nil
}

func (s *Scheduler) Start() error {
	if s.cfg.ReconcileEnabled && s.reconciler != nil {
		_, err := s.s.NewJob(
			gocron.CronJob(s.cfg.ReconcileCron, false),
			gocron.NewTask(s.reconcileTotals),
			gocron.WithName(ReconcileTotalsJob),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return fmt.Errorf("failed to create %s job: %w", ReconcileTotalsJob, err)
		}
	}

	s.s.Start()
	s.logger.Info("scheduler started", "jobs", len(s.s.Jobs()))
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

// RunNow triggers a registered job outside its schedule.
func (s *Scheduler) RunNow(name string) error {
	for _, job := range s.s.Jobs() {
		if job.Name() == name {
			return job.RunNow()
		}
	}
	return fmt.Errorf("job %q is not registered", name)
}

func (s *Scheduler) reconcileTotals() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Timeout)
	defer cancel()

	result, err := s.reconciler.ReconcileTotals(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "reconcile totals job failed", "error", err)
		return
	}
	s.logger.InfoContext(ctx, "reconcile totals job finished",
		"players_checked", result.PlayersChecked,
		"players_fixed", result.PlayersFixed,
		"teams_checked", result.TeamsChecked,
		"teams_fixed", result.TeamsFixed,
		"duration", result.Duration,
	)
}
