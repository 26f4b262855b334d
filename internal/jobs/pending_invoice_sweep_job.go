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

type pendingInvoiceSweeper interface {
	Handle(ctx context.Context, command commands.SweepPendingInvoicesCommand) (int, error)
}

// PendingInvoiceSweepJob fails invoices left in PENDING for longer than maxAge,
// which happens when the process dies between submitting and recording a stamp.
type PendingInvoiceSweepJob struct {
	handler  pendingInvoiceSweeper
	clock    kernel.Clock
	schedule string
	maxAge   time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewPendingInvoiceSweepJob(
	handler pendingInvoiceSweeper,
	clock kernel.Clock,
	schedule string,
	maxAge time.Duration,
	logger *slog.Logger,
) *PendingInvoiceSweepJob {
	logger = logger.With("component", "pending_invoice_sweep_job")
	return &PendingInvoiceSweepJob{
		handler:  handler,
		clock:    clock,
		schedule: schedule,
		maxAge:   maxAge,
		cron:     newCron(logger),
		logger:   logger,
	}
}

func (j *PendingInvoiceSweepJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.tick); err != nil {
		return fmt.Errorf("schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.Info("Pending invoice sweep job started", "schedule", j.schedule, "max_age", j.maxAge)
	return nil
}

func (j *PendingInvoiceSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Pending invoice sweep job stopped")
}

func (j *PendingInvoiceSweepJob) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()
	_, _ = j.RunOnce(ctx)
}

// RunOnce runs one sweep and returns how many invoices it failed.
func (j *PendingInvoiceSweepJob) RunOnce(ctx context.Context) (int, error) {
	cmd, err := commands.NewSweepPendingInvoicesCommand(j.clock.Now(), j.maxAge)
	if err != nil {
		j.logger.ErrorContext(ctx, "Pending invoice sweep failed", "error", err)
		return 0, err
	}

	failed, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Pending invoice sweep failed", "failed", failed, "error", err)
		return failed, err
	}

	if failed > 0 {
		j.logger.WarnContext(ctx, "Stuck invoices moved to ERROR", "count", failed)
	}
	return failed, nil
}
