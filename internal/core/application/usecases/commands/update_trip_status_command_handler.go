package commands

import (
	"context"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/core/ports"
)

// UpdateTripStatusCommandHandler applies a manual status change. The trip row is
// locked for the duration, and entering a terminal status releases both resources
// in the same transaction.
type UpdateTripStatusCommandHandler struct {
	uowFactory TripUoWFactory
	authorizer ports.Authorizer
	clock      kernel.Clock
}

// NewUpdateTripStatusCommandHandler creates a handler backed by uowFactory.
func NewUpdateTripStatusCommandHandler(
	uowFactory TripUoWFactory,
	authorizer ports.Authorizer,
	clock kernel.Clock,
) UpdateTripStatusCommandHandler {
	return UpdateTripStatusCommandHandler{
		uowFactory: uowFactory,
		authorizer: authorizer,
		clock:      clock,
	}
}

func (h UpdateTripStatusCommandHandler) Handle(ctx context.Context, command UpdateTripStatusCommand) (*trip.Trip, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	t, err := lockTripForActor(ctx, uow.TripRepository(), h.authorizer, command.Actor(), command.TripID())
	if err != nil {
		return nil, err
	}

	transition, err := t.ChangeStatus(command.Status(), h.clock.Now())
	if err != nil {
		return nil, err
	}
	if !transition.Changed {
		return t, nil
	}

	if err = uow.TripRepository().Update(ctx, t); err != nil {
		return nil, err
	}

	if transition.ReleasesResources {
		if err = releaseResources(ctx, uow.ResourceRegistry(), t); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return t, nil
}
