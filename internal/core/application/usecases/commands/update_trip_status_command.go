package commands

import (
	"errors"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

var ErrUpdateTripStatusCommandIsNotConstructed = errors.New(
	"UpdateTripStatusCommand must be created via NewUpdateTripStatusCommand constructor",
)

// UpdateTripStatusCommand moves a trip to status by hand.
type UpdateTripStatusCommand struct {
	actor  kernel.UUID
	tripID kernel.UUID
	status trip.Status

	guard guard.ConstructorGuard
}

func NewUpdateTripStatusCommand(actor, tripID kernel.UUID, status trip.Status) (UpdateTripStatusCommand, error) {
	if err := errors.Join(
		wrapRequired("actor", actor.Validate()),
		wrapRequired("tripId", tripID.Validate()),
		status.Validate(),
	); err != nil {
		return UpdateTripStatusCommand{}, err
	}

	return UpdateTripStatusCommand{
		actor:  actor,
		tripID: tripID,
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateTripStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTripStatusCommandIsNotConstructed)
}

func (c UpdateTripStatusCommand) Actor() kernel.UUID { return c.actor }
func (c UpdateTripStatusCommand) TripID() kernel.UUID { return c.tripID }
func (c UpdateTripStatusCommand) Status() trip.Status { return c.status }

func wrapRequired(param string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewValueIsRequiredErrorWithCause(param, err)
}
