package commands

import (
	"context"

	"fleet/internal/core/domain/model/invoice"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/ports"
)

// RetryInvoiceStampCommandHandler returns a failed invoice to Draft so it can be
// stamped again. A document issued before the failure is kept on the invoice.
type RetryInvoiceStampCommandHandler struct {
	uowFactory InvoiceUoWFactory
	authorizer ports.Authorizer
	clock      kernel.Clock
}

// NewRetryInvoiceStampCommandHandler creates a handler backed by uowFactory.
func NewRetryInvoiceStampCommandHandler(
	uowFactory InvoiceUoWFactory,
	authorizer ports.Authorizer,
	clock kernel.Clock,
) RetryInvoiceStampCommandHandler {
	return RetryInvoiceStampCommandHandler{uowFactory: uowFactory, authorizer: authorizer, clock: clock}
}

// Handle moves Error to Draft. Any other status is errs.StateIsInvalidError.
func (h RetryInvoiceStampCommandHandler) Handle(
	ctx context.Context,
	command RetryInvoiceStampCommand,
) (*invoice.Invoice, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	invoices := uow.InvoiceRepository()
	inv, err := lockInvoiceForActor(ctx, invoices, h.authorizer, command.Actor(), command.InvoiceID())
	if err != nil {
		return nil, err
	}

	if err = inv.ResetForRetry(h.clock.Now()); err != nil {
		return nil, err
	}

	if err = invoices.Update(ctx, inv); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return inv, nil
}
