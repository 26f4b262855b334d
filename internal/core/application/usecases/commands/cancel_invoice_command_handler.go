package commands

import (
	"context"
	"strings"

	"fleet/internal/core/domain/model/invoice"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/ports"
)

// CancelInvoiceCommandHandler cancels a Stamped invoice, first at the fiscal
// service and then locally. The invoice row stays locked during the remote call
// so two cancellations cannot both reach the service.
type CancelInvoiceCommandHandler struct {
	uowFactory InvoiceUoWFactory
	authorizer ports.Authorizer
	fiscal     ports.FiscalDocumentService
	clock      kernel.Clock
}

// NewCancelInvoiceCommandHandler creates a handler that cancels through fiscal.
func NewCancelInvoiceCommandHandler(
	uowFactory InvoiceUoWFactory,
	authorizer ports.Authorizer,
	fiscal ports.FiscalDocumentService,
	clock kernel.Clock,
) CancelInvoiceCommandHandler {
	return CancelInvoiceCommandHandler{
		uowFactory: uowFactory,
		authorizer: authorizer,
		fiscal:     fiscal,
		clock:      clock,
	}
}

func (h CancelInvoiceCommandHandler) Handle(ctx context.Context, command CancelInvoiceCommand) (*invoice.Invoice, error) {
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

	if _, err = inv.Status().TransitionTo(invoice.Cancelled); err != nil {
		return nil, err
	}

	reason := strings.TrimSpace(command.Reason())
	if reason == "" {
		reason = invoice.DefaultCancellationReason
	}

	if externalID := inv.Issued().ExternalID; externalID != "" {
		if err = h.fiscal.CancelDocument(ctx, externalID, reason); err != nil {
			return nil, asExternal(fiscalServiceName, "cancel document", err)
		}
	}

	if err = inv.Cancel(reason, h.clock.Now()); err != nil {
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
