package commands

import (
	"errors"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/guard"
)

var ErrStampInvoiceCommandIsNotConstructed = errors.New(
	"StampInvoiceCommand must be created via NewStampInvoiceCommand constructor",
)

// StampInvoiceCommand asks for a Draft invoice to be issued. A nil actor is the system.
type StampInvoiceCommand struct {
	invoiceTarget

	guard guard.ConstructorGuard
}

func NewStampInvoiceCommand(actor *kernel.UUID, invoiceID kernel.UUID) (StampInvoiceCommand, error) {
	target, err := newInvoiceTarget(actor, invoiceID)
	if err != nil {
		return StampInvoiceCommand{}, err
	}
	return StampInvoiceCommand{invoiceTarget: target, guard: guard.NewConstructorGuard()}, nil
}

func (c StampInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrStampInvoiceCommandIsNotConstructed)
}
