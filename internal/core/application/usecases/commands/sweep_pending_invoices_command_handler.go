package commands

import (
	"context"
	"fmt"
)

// SweepPendingInvoicesCommandHandler fails invoices left in Pending longer than the
// command's max age, usually by a process that died mid-stamp.
type SweepPendingInvoicesCommandHandler struct {
	uowFactory InvoiceUoWFactory
}

// NewSweepPendingInvoicesCommandHandler creates a handler backed by uowFactory.
func NewSweepPendingInvoicesCommandHandler(uowFactory InvoiceUoWFactory) SweepPendingInvoicesCommandHandler {
	return SweepPendingInvoicesCommandHandler{uowFactory: uowFactory}
}

// Handle returns the number of invoices moved to Error.
func (h SweepPendingInvoicesCommandHandler) Handle(ctx context.Context, command SweepPendingInvoicesCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	invoices := uow.InvoiceRepository()
	stuck, err := invoices.ListStuckPending(ctx, command.Now().Add(-command.MaxAge()))
	if err != nil {
		return 0, err
	}

	reason := fmt.Sprintf("stamping did not complete within %s", command.MaxAge())
	failed := 0
	for _, inv := range stuck {
		if !inv.IsStuckPending(command.Now(), command.MaxAge()) {
			continue
		}
		if err = inv.MarkFailed(reason, command.Now()); err != nil {
			return 0, err
		}
		if err = invoices.Update(ctx, inv); err != nil {
			return 0, err
		}
		failed++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return failed, nil
}
