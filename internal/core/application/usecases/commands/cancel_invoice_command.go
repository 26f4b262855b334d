package commands

import (
	"errors"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/guard"
)

var ErrCancelInvoiceCommandIsNotConstructed = errors.New(
	"CancelInvoiceCommand must be created via NewCancelInvoiceCommand constructor",
)

// CancelInvoiceCommand cancels a Stamped invoice with the fiscal service.
type CancelInvoiceCommand struct {
	invoiceTarget
	reason string

	guard guard.ConstructorGuard
}

// NewCancelInvoiceCommand accepts an empty reason; the invoice applies the default motive.
func NewCancelInvoiceCommand(actor *kernel.UUID, invoiceID kernel.UUID, reason string) (CancelInvoiceCommand, error) {
	target, err := newInvoiceTarget(actor, invoiceID)
	if err != nil {
		return CancelInvoiceCommand{}, err
	}
	return CancelInvoiceCommand{invoiceTarget: target, reason: reason, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrCancelInvoiceCommandIsNotConstructed)
}

func (c CancelInvoiceCommand) Reason() string {
	return c.reason
}
