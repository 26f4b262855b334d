package commands

import (
	"errors"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/pkg/guard"
)

var ErrUpdateTripCommandIsNotConstructed = errors.New(
	"UpdateTripCommand must be created via NewUpdateTripCommand constructor",
)

// UpdateTripCommand patches the editable details of a trip. A nil notes pointer
// leaves notes untouched; a nil cargo slice leaves cargo untouched, while an empty
// non-nil slice clears it.
type UpdateTripCommand struct {
	actor        kernel.UUID
	tripID       kernel.UUID
	notes        *string
	cargo        []*trip.CargoItem
	replaceCargo bool

	guard guard.ConstructorGuard
}

func NewUpdateTripCommand(actor, tripID kernel.UUID, notes *string, cargo []CargoInput) (UpdateTripCommand, error) {
	if err := errors.Join(
		wrapRequired("actor", actor.Validate()),
		wrapRequired("tripId", tripID.Validate()),
	); err != nil {
		return UpdateTripCommand{}, err
	}

	cmd := UpdateTripCommand{
		actor:  actor,
		tripID: tripID,
		notes:  notes,
		guard:  guard.NewConstructorGuard(),
	}

	if cargo != nil {
		items, err := buildCargo(cargo)
		if err != nil {
			return UpdateTripCommand{}, err
		}
		cmd.cargo = items
		cmd.replaceCargo = true
	}

	return cmd, nil
}

func (c UpdateTripCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTripCommandIsNotConstructed)
}

func (c UpdateTripCommand) Actor() kernel.UUID { return c.actor }
func (c UpdateTripCommand) TripID() kernel.UUID { return c.tripID }
func (c UpdateTripCommand) Notes() *string { return c.notes }
func (c UpdateTripCommand) Cargo() []*trip.CargoItem { return c.cargo }
func (c UpdateTripCommand) ReplacesCargo() bool { return c.replaceCargo }
