package commands

import (
	"errors"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

var ErrCreateTripCommandIsNotConstructed = errors.New(
	"CreateTripCommand must be created via NewCreateTripCommand constructor",
)

// CargoInput is one cargo row of a create or update request.
type CargoInput struct {
	Name     string
	WeightKg float64
	ImageURL string
	Notes    string
}

// CreateTripCommand schedules a trip and reserves its driver and vehicle.
//
// Example:
//
//	cmd, err := NewCreateTripCommand(actorID, assignment, schedule, price, "", nil)
//	if err != nil {
//	    return err
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateTripCommand struct {
	actor      kernel.UUID
	assignment trip.Assignment
	schedule   trip.Schedule
	price      kernel.Money
	notes      string
	cargo      []*trip.CargoItem

	guard guard.ConstructorGuard
}

// NewCreateTripCommand validates identifiers and cargo rows. Schedule rules are
// checked by the Trip aggregate.
func NewCreateTripCommand(
	actor kernel.UUID,
	assignment trip.Assignment,
	schedule trip.Schedule,
	price kernel.Money,
	notes string,
	cargo []CargoInput,
) (CreateTripCommand, error) {
	if err := actor.Validate(); err != nil {
		return CreateTripCommand{}, errs.NewValueIsRequiredErrorWithCause("actor", err)
	}

	items, err := buildCargo(cargo)
	if err != nil {
		return CreateTripCommand{}, err
	}

	return CreateTripCommand{
		actor:      actor,
		assignment: assignment,
		schedule:   schedule,
		price:      price,
		notes:      notes,
		cargo:      items,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreateTripCommand) Validate() error {
	return c.guard.Validate(ErrCreateTripCommandIsNotConstructed)
}

func (c CreateTripCommand) Actor() kernel.UUID {
	return c.actor
}

func (c CreateTripCommand) Assignment() trip.Assignment {
	return c.assignment
}

func (c CreateTripCommand) Schedule() trip.Schedule {
	return c.schedule
}

func (c CreateTripCommand) Price() kernel.Money {
	return c.price
}

func (c CreateTripCommand) Notes() string {
	return c.notes
}

func (c CreateTripCommand) Cargo() []*trip.CargoItem {
	return c.cargo
}

func buildCargo(in []CargoInput) ([]*trip.CargoItem, error) {
	items := make([]*trip.CargoItem, 0, len(in))
	var errList []error
	for _, c := range in {
		item, err := trip.NewCargoItem(c.Name, c.WeightKg, c.ImageURL, c.Notes)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return items, nil
}
