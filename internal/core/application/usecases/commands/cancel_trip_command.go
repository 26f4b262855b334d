package commands

import (
	"errors"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/guard"
)

var ErrCancelTripCommandIsNotConstructed = errors.New(
	"CancelTripCommand must be created via NewCancelTripCommand constructor",
)

// CancelTripCommand moves a trip to Cancelled.
type CancelTripCommand struct {
	actor  kernel.UUID
	tripID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCancelTripCommand(actor, tripID kernel.UUID) (CancelTripCommand, error) {
	if err := errors.Join(
		wrapRequired("actor", actor.Validate()),
		wrapRequired("tripId", tripID.Validate()),
	); err != nil {
		return CancelTripCommand{}, err
	}

	return CancelTripCommand{
		actor:  actor,
		tripID: tripID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c CancelTripCommand) Validate() error {
	return c.guard.Validate(ErrCancelTripCommandIsNotConstructed)
}

func (c CancelTripCommand) Actor() kernel.UUID { return c.actor }
func (c CancelTripCommand) TripID() kernel.UUID { return c.tripID }
