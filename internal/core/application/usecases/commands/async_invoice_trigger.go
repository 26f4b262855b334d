package commands

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"fleet/internal/core/domain/model/invoice"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/errs"
)

type invoiceCreator interface {
	Handle(ctx context.Context, command CreateInvoiceFromTripCommand) (*invoice.Invoice, error)
}

// AsyncInvoiceTrigger creates trip invoices in the background once the trip has
// been committed. Each trigger runs in its own goroutine with a context detached
// from the request and bounded by timeout. Failures are logged and dropped.
type AsyncInvoiceTrigger struct {
	creator invoiceCreator
	timeout time.Duration
	logger  *slog.Logger
	wg      sync.WaitGroup
}

// NewAsyncInvoiceTrigger creates a trigger whose runs are each bounded by timeout.
func NewAsyncInvoiceTrigger(creator invoiceCreator, timeout time.Duration, logger *slog.Logger) *AsyncInvoiceTrigger {
	return &AsyncInvoiceTrigger{
		creator: creator,
		timeout: timeout,
		logger:  logger.With("component", "invoice_trigger"),
	}
}

func (t *AsyncInvoiceTrigger) Trigger(tripID kernel.UUID) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		t.run(tripID)
	}()
}

func (t *AsyncInvoiceTrigger) run(tripID kernel.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	logger := t.logger.With("trip_id", tripID.String())

	cmd, err := NewCreateInvoiceFromTripCommand(nil, tripID)
	if err != nil {
		logger.Error("invalid invoice trigger", "error", err)
		return
	}

	inv, err := t.creator.Handle(ctx, cmd)
	switch {
	case errors.Is(err, errs.ErrConflict):
		logger.Info("trip already has an invoice")
	case err != nil:
		logger.Error("failed to create invoice for trip", "error", err)
	default:
		logger.Info("invoice created for trip", "invoice_id", inv.ID().String())
	}
}

// Wait blocks until every triggered creation has finished or ctx is done.
func (t *AsyncInvoiceTrigger) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
