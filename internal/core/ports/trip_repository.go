package ports

import (
	"context"
	"time"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"
)

// TripRepository persists Trip aggregates together with their cargo.
type TripRepository interface {
	// Add inserts the trip and its cargo rows.
	Add(ctx context.Context, t *trip.Trip) error

	// Update writes status, notes and updated_at. Cargo is written by ReplaceCargo.
	Update(ctx context.Context, t *trip.Trip) error

	// ReplaceCargo deletes every cargo row of the trip and inserts t.Cargo().
	ReplaceCargo(ctx context.Context, t *trip.Trip) error

	// Get returns errs.ObjectNotFoundError when the trip does not exist.
	Get(ctx context.Context, id kernel.UUID) (*trip.Trip, error)

	// GetForUpdate is Get with a row lock held until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*trip.Trip, error)

	// ListDueToStart locks and returns NotStarted trips with start <= now.
	// Rows locked by other transactions are skipped.
	ListDueToStart(ctx context.Context, now time.Time) ([]*trip.Trip, error)

	// ListOverdue locks and returns InProgress trips with end < now, skipping locked rows.
	ListOverdue(ctx context.Context, now time.Time) ([]*trip.Trip, error)
}
