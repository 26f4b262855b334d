package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fleet/internal/core/application/usecases/commands"
	"fleet/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

const runTimeout = 2 * time.Minute

type tripReconciler interface {
	Handle(ctx context.Context, command commands.ReconcileTripStatusesCommand) (commands.ReconcileResult, error)
}

// TripReconcileJob advances trip statuses as their schedules pass.
type TripReconcileJob struct {
	handler  tripReconciler
	clock    kernel.Clock
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewTripReconcileJob(handler tripReconciler, clock kernel.Clock, schedule string, logger *slog.Logger) *TripReconcileJob {
	logger = logger.With("component", "trip_reconcile_job")
	return &TripReconcileJob{
		handler:  handler,
		clock:    clock,
		schedule: schedule,
		cron:     newCron(logger),
		logger:   logger,
	}
}

func (j *TripReconcileJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.tick); err != nil {
		return fmt.Errorf("schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.Info("Trip reconcile job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a run in progress to finish.
func (j *TripReconcileJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Trip reconcile job stopped")
}

func (j *TripReconcileJob) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()
	_, _ = j.RunOnce(ctx)
}

// RunOnce reconciles as of the clock's current time. Errors are logged and returned.
func (j *TripReconcileJob) RunOnce(ctx context.Context) (commands.ReconcileResult, error) {
	cmd, err := commands.NewReconcileTripStatusesCommand(j.clock.Now())
	if err != nil {
		j.logger.ErrorContext(ctx, "Trip reconcile job failed", "error", err)
		return commands.ReconcileResult{}, err
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Trip reconcile job failed",
			"started", result.Started, "completed_late", result.CompletedLate, "error", err)
		return result, err
	}

	if result.Started > 0 || result.CompletedLate > 0 {
		j.logger.InfoContext(ctx, "Trips reconciled", "started", result.Started, "completed_late", result.CompletedLate)
	}
	return result, nil
}
