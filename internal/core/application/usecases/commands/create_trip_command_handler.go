package commands

import (
	"context"
	"errors"

	"fleet/internal/core/application/access"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/core/ports"
	"fleet/internal/pkg/errs"
)

// CreateTripCommandHandler creates a trip and reserves its driver and vehicle in a
// single transaction. Either both reservations and the insert commit, or nothing does.
// After commit the invoice trigger is fired; its outcome does not affect the result.
type CreateTripCommandHandler struct {
	uowFactory TripUoWFactory
	authorizer ports.Authorizer
	directory  ports.Directory
	trigger    ports.InvoiceTrigger
	clock      kernel.Clock
}

// NewCreateTripCommandHandler creates a handler backed by uowFactory.
func NewCreateTripCommandHandler(
	uowFactory TripUoWFactory,
	authorizer ports.Authorizer,
	directory ports.Directory,
	trigger ports.InvoiceTrigger,
	clock kernel.Clock,
) CreateTripCommandHandler {
	return CreateTripCommandHandler{
		uowFactory: uowFactory,
		authorizer: authorizer,
		directory:  directory,
		trigger:    trigger,
		clock:      clock,
	}
}

// Handle returns:
//   - errs.ValueIsInvalidError when the actor is not a member of the team or input is invalid
//   - errs.ObjectNotFoundError when a referenced client, driver, vehicle or route is missing
//   - errs.ConflictError when the driver or vehicle is not available
func (h CreateTripCommandHandler) Handle(ctx context.Context, command CreateTripCommand) (*trip.Trip, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	teamID := command.Assignment().Team
	if err := access.RequireMember(ctx, h.authorizer, command.Actor(), teamID); err != nil {
		if errors.Is(err, access.ErrNotTeamMember) {
			return nil, errs.NewValueIsInvalidErrorWithCause("teamId", err)
		}
		return nil, err
	}

	newTrip, err := trip.NewTrip(
		command.Assignment(),
		command.Schedule(),
		command.Price(),
		command.Notes(),
		command.Cargo(),
		h.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err = h.directory.CheckAssignment(ctx, command.Assignment()); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	registry := uow.ResourceRegistry()
	for _, ref := range newTrip.Resources() {
		if err = registry.Reserve(ctx, ref, newTrip.ID()); err != nil {
			return nil, err
		}
	}

	if err = uow.TripRepository().Add(ctx, newTrip); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.trigger.Trigger(newTrip.ID())
	return newTrip, nil
}
