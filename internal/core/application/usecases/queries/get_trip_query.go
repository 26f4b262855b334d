package queries

import (
	"errors"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

var ErrGetTripQueryIsNotConstructed = errors.New(
	"GetTripQuery must be created via NewGetTripQuery constructor",
)

// GetTripQuery reads one trip with its cargo. Trips of teams the actor does not
// belong to are reported as not found.
type GetTripQuery struct {
	actor  kernel.UUID
	tripID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetTripQuery(actor, tripID kernel.UUID) (GetTripQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetTripQuery{}, errs.NewValueIsRequiredErrorWithCause("actor", err)
	}
	if err := tripID.Validate(); err != nil {
		return GetTripQuery{}, errs.NewValueIsRequiredErrorWithCause("tripId", err)
	}
	return GetTripQuery{actor: actor, tripID: tripID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetTripQuery) Validate() error {
	return q.guard.Validate(ErrGetTripQueryIsNotConstructed)
}

func (q GetTripQuery) Actor() kernel.UUID { return q.actor }
func (q GetTripQuery) TripID() kernel.UUID { return q.tripID }
