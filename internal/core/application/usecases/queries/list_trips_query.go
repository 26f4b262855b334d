package queries

import (
	"errors"
	"strings"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

var ErrListTripsQueryIsNotConstructed = errors.New(
	"ListTripsQuery must be created via NewListTripsQuery constructor",
)

// ListTripsQuery pages through a team's trips, newest first.
//
// Search matches client name, driver name or vehicle plate, case-insensitively.
// An empty status lists every status.
type ListTripsQuery struct {
	actor  kernel.UUID
	teamID kernel.UUID
	page   Page
	search string
	status *trip.Status

	guard guard.ConstructorGuard
}

func NewListTripsQuery(actor, teamID kernel.UUID, page Page, search, status string) (ListTripsQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListTripsQuery{}, errs.NewValueIsRequiredErrorWithCause("actor", err)
	}
	if err := teamID.Validate(); err != nil {
		return ListTripsQuery{}, errs.NewValueIsRequiredErrorWithCause("teamId", err)
	}

	var filter *trip.Status
	if status = strings.TrimSpace(status); status != "" {
		parsed, err := trip.ParseStatus(strings.ToUpper(status))
		if err != nil {
			return ListTripsQuery{}, err
		}
		filter = &parsed
	}

	return ListTripsQuery{
		actor:  actor,
		teamID: teamID,
		page:   page.orDefault(),
		search: strings.TrimSpace(search),
		status: filter,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListTripsQuery) Validate() error {
	return q.guard.Validate(ErrListTripsQueryIsNotConstructed)
}

func (q ListTripsQuery) Actor() kernel.UUID { return q.actor }
func (q ListTripsQuery) TeamID() kernel.UUID { return q.teamID }
func (q ListTripsQuery) Page() Page { return q.page }
func (q ListTripsQuery) Search() string { return q.search }
func (q ListTripsQuery) Status() *trip.Status { return q.status }

type ListTripsResponse struct {
	Trips []TripView
	PageInfo
}
