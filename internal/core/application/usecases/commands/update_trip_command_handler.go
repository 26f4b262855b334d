package commands

import (
	"context"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/core/ports"
)

// UpdateTripCommandHandler edits notes and replaces cargo. Status is never touched here.
type UpdateTripCommandHandler struct {
	uowFactory TripUoWFactory
	authorizer ports.Authorizer
	clock      kernel.Clock
}

// NewUpdateTripCommandHandler creates a handler backed by uowFactory.
func NewUpdateTripCommandHandler(
	uowFactory TripUoWFactory,
	authorizer ports.Authorizer,
	clock kernel.Clock,
) UpdateTripCommandHandler {
	return UpdateTripCommandHandler{
		uowFactory: uowFactory,
		authorizer: authorizer,
		clock:      clock,
	}
}

func (h UpdateTripCommandHandler) Handle(ctx context.Context, command UpdateTripCommand) (*trip.Trip, error) {
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

	trips := uow.TripRepository()
	t, err := lockTripForActor(ctx, trips, h.authorizer, command.Actor(), command.TripID())
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	if command.Notes() != nil {
		t.SetNotes(*command.Notes(), now)
	}

	if command.ReplacesCargo() {
		if err = t.ReplaceCargo(command.Cargo(), now); err != nil {
			return nil, err
		}
		if err = trips.ReplaceCargo(ctx, t); err != nil {
			return nil, err
		}
	}

	if err = trips.Update(ctx, t); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return t, nil
}
