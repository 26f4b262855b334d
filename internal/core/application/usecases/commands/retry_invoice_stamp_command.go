package commands

import (
	"errors"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/guard"
)

var ErrRetryInvoiceStampCommandIsNotConstructed = errors.New(
	"RetryInvoiceStampCommand must be created via NewRetryInvoiceStampCommand constructor",
)

// RetryInvoiceStampCommand returns a failed invoice to Draft so it can be stamped again.
type RetryInvoiceStampCommand struct {
	invoiceTarget

	guard guard.ConstructorGuard
}

func NewRetryInvoiceStampCommand(actor *kernel.UUID, invoiceID kernel.UUID) (RetryInvoiceStampCommand, error) {
	target, err := newInvoiceTarget(actor, invoiceID)
	if err != nil {
		return RetryInvoiceStampCommand{}, err
	}
	return RetryInvoiceStampCommand{invoiceTarget: target, guard: guard.NewConstructorGuard()}, nil
}

func (c RetryInvoiceStampCommand) Validate() error {
	return c.guard.Validate(ErrRetryInvoiceStampCommandIsNotConstructed)
}
