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

// lockTripForActor loads the trip with a row lock and hides it from non-members.
func lockTripForActor(
	ctx context.Context,
	trips ports.TripRepository,
	auth ports.Authorizer,
	actor, tripID kernel.UUID,
) (*trip.Trip, error) {
	t, err := trips.GetForUpdate(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if err = access.RequireMember(ctx, auth, actor, t.TeamID()); err != nil {
		if errors.Is(err, access.ErrNotTeamMember) {
			return nil, errs.NewObjectNotFoundError("trip", tripID.String())
		}
		return nil, err
	}
	return t, nil
}

// releaseResources frees the driver and vehicle if t still holds them in the registry.
func releaseResources(ctx context.Context, registry ports.ResourceRegistry, t *trip.Trip) error {
	for _, ref := range t.Resources() {
		if err := registry.Release(ctx, ref, t.ID()); err != nil {
			return err
		}
	}
	return nil
}
