package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-five/internal/platform/logging"
	"github.com/riskibarqy/fantasy-five/internal/usecase"
)

type fakeReconciler struct {
	calls atomic.Int32
	done  chan struct{}
	err   error
}

func (f *fakeReconciler) ReconcileTotals(ctx context.Context) (usecase.ReconcileResult, error) {
	f.calls.Add(1)
	defer func() { f.done <- struct{}{} }()
	if _, ok := ctx.Deadline(); !ok {
		return usecase.ReconcileResult{}, errors.New("missing job deadline")
	}
	return usecase.ReconcileResult{PlayersChecked: 3}, f.err
}

func TestScheduler_RunNowTriggersReconcile(t *testing.T) {
	t.Parallel()

	reconciler := &fakeReconciler{done: make(chan struct{}, 1)}
	scheduler, err := NewScheduler(Config{
		ReconcileEnabled: true,
		ReconcileCron:    "0 3 * * *",
		Timeout:          time.Second,
	}, reconciler, logging.NewNop())
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	if err := scheduler.Start(); err != nil {
		t.Fatalf("start scheduler: %v", err)
	}
	defer func() { _ = scheduler.Stop() }()

	if err := scheduler.RunNow(ReconcileTotalsJob); err != nil {
		t.Fatalf("run now: %v", err)
	}

	select {
	case <-reconciler.done:
	case <-time.After(5 * time.Second):
		t.Fatalf("reconcile job did not run")
	}
	if got := reconciler.calls.Load(); got != 1 {
		t.Fatalf("unexpected reconcile calls: got=%d want=1", got)
	}
}

func TestScheduler_DisabledRegistersNothing(t *testing.T) {
	t.Parallel()

	scheduler, err := NewScheduler(Config{ReconcileEnabled: false, ReconcileCron: "0 3 * * *"}, &fakeReconciler{}, logging.NewNop())
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	if err := scheduler.Start(); err != nil {
		t.Fatalf("start scheduler: %v", err)
	}
	defer func() { _ = scheduler.Stop() }()

	if err := scheduler.RunNow(ReconcileTotalsJob); err == nil {
		t.Fatalf("expected error for unregistered job")
	}
}

func TestScheduler_InvalidCron(t *testing.T) {
	t.Parallel()

	scheduler, err := NewScheduler(Config{ReconcileEnabled: true, ReconcileCron: "not a cron"}, &fakeReconciler{}, logging.NewNop())
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	defer func() { _ = scheduler.Stop() }()

	if err := scheduler.Start(); err == nil {
		t.Fatalf("expected error for invalid cron expression")
	}
}

func TestScheduler_ReconcileFailureIsContained(t *testing.T) {
	t.Parallel()

	reconciler := &fakeReconciler{done: make(chan struct{}, 1), err: errors.New("db down")}
	scheduler, err := NewScheduler(Config{ReconcileEnabled: true, ReconcileCron: "0 3 * * *"}, reconciler, logging.NewNop())
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	defer func() { _ = scheduler.Stop() }()

	scheduler.reconcileTotals()
	<-reconciler.done
	if got := reconciler.calls.Load(); got != 1 {
		t.Fatalf("unexpected reconcile calls: got=%d want=1", got)
	}
}
