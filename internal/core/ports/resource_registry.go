package ports

import (
	"context"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/resource"
)

// ResourceRegistry tracks which trip holds each driver and vehicle.
//
// Reserve and Release are single conditional statements, so two transactions
// racing for the same resource cannot both win.
type ResourceRegistry interface {
	// Reserve commits an Available resource to tripID. It returns errs.ConflictError
	// when the resource is not Available and errs.ObjectNotFoundError when it does not exist.
	Reserve(ctx context.Context, ref resource.Ref, tripID kernel.UUID) error

	// Release makes the resource Available if and only if tripID still holds it.
	// Releasing a resource that is free or held by another trip is a no-op.
	Release(ctx context.Context, ref resource.Ref, tripID kernel.UUID) error

	// ReleaseByTrips releases every driver and vehicle held by any of tripIDs.
	ReleaseByTrips(ctx context.Context, tripIDs []kernel.UUID) error
}
