package queries

import (
	"errors"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

var ErrGetInvoiceQueryIsNotConstructed = errors.New(
	"GetInvoiceQuery must be created via NewGetInvoiceQuery constructor",
)

// GetInvoiceQuery reads one invoice on behalf of actor.
type GetInvoiceQuery struct {
	actor     kernel.UUID
	invoiceID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetInvoiceQuery(actor, invoiceID kernel.UUID) (GetInvoiceQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetInvoiceQuery{}, errs.NewValueIsRequiredErrorWithCause("actor", err)
	}
	if err := invoiceID.Validate(); err != nil {
		return GetInvoiceQuery{}, errs.NewValueIsRequiredErrorWithCause("invoiceId", err)
	}
	return GetInvoiceQuery{actor: actor, invoiceID: invoiceID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetInvoiceQuery) Validate() error {
	return q.guard.Validate(ErrGetInvoiceQueryIsNotConstructed)
}

func (q GetInvoiceQuery) Actor() kernel.UUID { return q.actor }
func (q GetInvoiceQuery) InvoiceID() kernel.UUID { return q.invoiceID }
