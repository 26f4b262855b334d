package ports

import (
	"context"

	"fleet/internal/core/domain/model/invoice"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"
)

// Directory reads the team-owned master data (clients, drivers, vehicles, routes,
// fiscal settings) maintained elsewhere. It never writes.
type Directory interface {
	// CheckAssignment returns errs.ObjectNotFoundError naming the first reference
	// that does not exist within a.Team.
	CheckAssignment(ctx context.Context, a trip.Assignment) error

	// FiscalProfile returns errs.ObjectNotFoundError when the team has no fiscal data.
	FiscalProfile(ctx context.Context, teamID kernel.UUID) (invoice.FiscalProfile, error)

	BillingInfo(ctx context.Context, clientID kernel.UUID) (invoice.BillingInfo, error)

	TripParties(ctx context.Context, a trip.Assignment) (invoice.TripParties, error)
}
