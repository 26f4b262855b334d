package commands

import (
	"context"
	"errors"

	"fleet/internal/core/application/access"
	"fleet/internal/core/domain/model/invoice"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/ports"
	"fleet/internal/pkg/errs"
)

// lockInvoiceForActor loads the invoice with a row lock. A nil actor means the call
// comes from inside the service (trigger, job) and skips the membership check.
func lockInvoiceForActor(
	ctx context.Context,
	invoices ports.InvoiceRepository,
	auth ports.Authorizer,
	actor *kernel.UUID,
	invoiceID kernel.UUID,
) (*invoice.Invoice, error) {
	inv, err := invoices.GetForUpdate(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return inv, nil
	}
	if err = access.RequireMember(ctx, auth, *actor, inv.TeamID()); err != nil {
		if errors.Is(err, access.ErrNotTeamMember) {
			return nil, errs.NewObjectNotFoundError("invoice", invoiceID.String())
		}
		return nil, err
	}
	return inv, nil
}

// invoiceTarget is embedded by invoice commands addressed by invoice id.
type invoiceTarget struct {
	actor     *kernel.UUID
	invoiceID kernel.UUID
}

func newInvoiceTarget(actor *kernel.UUID, invoiceID kernel.UUID) (invoiceTarget, error) {
	if actor != nil {
		if err := actor.Validate(); err != nil {
			return invoiceTarget{}, errs.NewValueIsRequiredErrorWithCause("actor", err)
		}
	}
	if err := invoiceID.Validate(); err != nil {
		return invoiceTarget{}, errs.NewValueIsRequiredErrorWithCause("invoiceId", err)
	}
	return invoiceTarget{actor: actor, invoiceID: invoiceID}, nil
}

// Actor is nil for calls made by the service itself.
func (t invoiceTarget) Actor() *kernel.UUID {
	return t.actor
}

func (t invoiceTarget) InvoiceID() kernel.UUID {
	return t.invoiceID
}
