package commands

import (
	"errors"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

var ErrCreateInvoiceFromTripCommandIsNotConstructed = errors.New(
	"CreateInvoiceFromTripCommand must be created via NewCreateInvoiceFromTripCommand constructor",
)

// CreateInvoiceFromTripCommand creates the Draft invoice for a trip.
type CreateInvoiceFromTripCommand struct {
	actor  *kernel.UUID
	tripID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateInvoiceFromTripCommand builds the command. actor is nil when the
// service creates the invoice on its own after a trip is scheduled.
func NewCreateInvoiceFromTripCommand(actor *kernel.UUID, tripID kernel.UUID) (CreateInvoiceFromTripCommand, error) {
	if actor != nil {
		if err := actor.Validate(); err != nil {
			return CreateInvoiceFromTripCommand{}, errs.NewValueIsRequiredErrorWithCause("actor", err)
		}
	}
	if err := tripID.Validate(); err != nil {
		return CreateInvoiceFromTripCommand{}, errs.NewValueIsRequiredErrorWithCause("tripId", err)
	}
	return CreateInvoiceFromTripCommand{
		actor:  actor,
		tripID: tripID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c CreateInvoiceFromTripCommand) Validate() error {
	return c.guard.Validate(ErrCreateInvoiceFromTripCommandIsNotConstructed)
}

func (c CreateInvoiceFromTripCommand) Actor() *kernel.UUID { return c.actor }
func (c CreateInvoiceFromTripCommand) TripID() kernel.UUID { return c.tripID }
