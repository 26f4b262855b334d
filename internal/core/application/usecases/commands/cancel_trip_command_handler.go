package commands

import (
	"context"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/core/ports"
)

// CancelTripCommandHandler cancels a trip and releases its resources atomically.
//
// Cancelling an already cancelled trip succeeds; the release is repeated, which is
// harmless because releases are scoped to the owning trip. Cancelling a completed
// trip returns errs.StateIsInvalidError.
type CancelTripCommandHandler struct {
	uowFactory TripUoWFactory
	authorizer ports.Authorizer
	clock      kernel.Clock
}

// NewCancelTripCommandHandler creates a handler backed by uowFactory.
func NewCancelTripCommandHandler(
	uowFactory TripUoWFactory,
	authorizer ports.Authorizer,
	clock kernel.Clock,
) CancelTripCommandHandler {
	return CancelTripCommandHandler{
		uowFactory: uowFactory,
		authorizer: authorizer,
		clock:      clock,
	}
}

func (h CancelTripCommandHandler) Handle(ctx context.Context, command CancelTripCommand) (*trip.Trip, error) {
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

	transition, err := t.Cancel(h.clock.Now())
	if err != nil {
		return nil, err
	}

	if transition.Changed {
		if err = uow.TripRepository().Update(ctx, t); err != nil {
			return nil, err
		}
	}

	if err = releaseResources(ctx, uow.ResourceRegistry(), t); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return t, nil
}
