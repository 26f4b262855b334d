package trip

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/resource"
	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

var ErrTripIsNotConstructed = errors.New("Trip must be created via NewTrip or RestoreTrip")

// Assignment names the team-owned entities a trip references. All of them must belong
// to Team; existence and ownership are checked by the caller against the directory.
type Assignment struct {
	Team    kernel.UUID
	Client  kernel.UUID
	Driver  kernel.UUID
	Vehicle kernel.UUID
	Route   kernel.UUID
}

func (a Assignment) validate() error {
	return errors.Join(
		wrapRequired("teamId", a.Team.Validate()),
		wrapRequired("clientId", a.Client.Validate()),
		wrapRequired("driverId", a.Driver.Validate()),
		wrapRequired("vehicleId", a.Vehicle.Validate()),
		wrapRequired("routeId", a.Route.Validate()),
	)
}

// Schedule is the planned window of a trip. EndAt must be strictly after StartAt.
type Schedule struct {
	StartAt time.Time
	EndAt   time.Time
}

func (s Schedule) validate() error {
	if s.StartAt.IsZero() {
		return errs.NewValueIsRequiredError("startDate")
	}
	if s.EndAt.IsZero() {
		return errs.NewValueIsRequiredError("endDate")
	}
	if !s.EndAt.After(s.StartAt) {
		return errs.NewValueIsInvalidErrorWithCause("endDate", fmt.Errorf("%s is not after %s",
			s.EndAt.Format(time.RFC3339), s.StartAt.Format(time.RFC3339)))
	}
	return nil
}

// Transition describes the effect of a status change.
type Transition struct {
	From Status
	To   Status
	// Changed is false for same-status writes.
	Changed bool
	// ReleasesResources is set when a non-terminal trip enters a terminal status.
	ReleasesResources bool
}

// Trip is the aggregate root of trip coordination.
type Trip struct {
	id         kernel.UUID
	assignment Assignment
	schedule   Schedule
	price      kernel.Money
	notes      string
	cargo      []*CargoItem
	status     Status
	createdAt  time.Time
	updatedAt  time.Time

	guard guard.ConstructorGuard
}

// NewTrip validates the input and derives the initial status from the clock:
// InProgress when the schedule has already started, NotStarted otherwise.
func NewTrip(
	assignment Assignment,
	schedule Schedule,
	price kernel.Money,
	notes string,
	cargo []*CargoItem,
	now time.Time,
) (*Trip, error) {
	if err := errors.Join(assignment.validate(), schedule.validate(), validateCargo(cargo)); err != nil {
		return nil, err
	}

	status := NotStarted
	if !schedule.StartAt.After(now) {
		status = InProgress
	}

	return &Trip{
		id:         kernel.NewUUID(),
		assignment: assignment,
		schedule:   schedule,
		price:      price,
		notes:      strings.TrimSpace(notes),
		cargo:      cargo,
		status:     status,
		createdAt:  now,
		updatedAt:  now,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// RestoreTrip reconstructs a stored trip. It validates identity, schedule and status
// but does not re-derive the status from the clock.
func RestoreTrip(
	id kernel.UUID,
	assignment Assignment,
	schedule Schedule,
	price kernel.Money,
	notes string,
	cargo []*CargoItem,
	status Status,
	createdAt, updatedAt time.Time,
) (*Trip, error) {
	if err := errors.Join(
		id.Validate(),
		assignment.validate(),
		schedule.validate(),
		status.Validate(),
		validateCargo(cargo),
	); err != nil {
		return nil, err
	}

	return &Trip{
		id:         id,
		assignment: assignment,
		schedule:   schedule,
		price:      price,
		notes:      notes,
		cargo:      cargo,
		status:     status,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (t *Trip) Validate() error {
	if t == nil {
		return ErrTripIsNotConstructed
	}
	return t.guard.Validate(ErrTripIsNotConstructed)
}

func (t *Trip) ID() kernel.UUID { return t.id }
func (t *Trip) Assignment() Assignment { return t.assignment }
func (t *Trip) TeamID() kernel.UUID { return t.assignment.Team }
func (t *Trip) Schedule() Schedule { return t.schedule }
func (t *Trip) Price() kernel.Money { return t.price }
func (t *Trip) Notes() string { return t.notes }
func (t *Trip) Status() Status { return t.status }
func (t *Trip) CreatedAt() time.Time { return t.createdAt }
func (t *Trip) UpdatedAt() time.Time { return t.updatedAt }

// Cargo returns a copy of the cargo slice.
func (t *Trip) Cargo() []*CargoItem {
	out := make([]*CargoItem, len(t.cargo))
	copy(out, t.cargo)
	return out
}

// Resources returns the driver and vehicle refs, in that order.
func (t *Trip) Resources() []resource.Ref {
	return []resource.Ref{
		resource.NewDriverRef(t.assignment.Driver),
		resource.NewVehicleRef(t.assignment.Vehicle),
	}
}

// HoldsResources reports whether the driver and vehicle are committed to this trip.
func (t *Trip) HoldsResources() bool {
	return !t.status.IsTerminal()
}

// ChangeStatus applies a manual or scheduled transition.
func (t *Trip) ChangeStatus(target Status, now time.Time) (Transition, error) {
	next, err := t.status.TransitionTo(target)
	if err != nil {
		return Transition{}, err
	}

	tr := Transition{
		From:              t.status,
		To:                next,
		Changed:           next != t.status,
		ReleasesResources: !t.status.IsTerminal() && next.IsTerminal(),
	}
	if tr.Changed {
		t.status = next
		t.updatedAt = now
	}
	return tr, nil
}

// Cancel moves the trip to Cancelled. Cancelling twice is a no-op; cancelling a
// completed trip is a StateIsInvalidError.
func (t *Trip) Cancel(now time.Time) (Transition, error) {
	return t.ChangeStatus(Cancelled, now)
}

// IsDueToStart reports whether the reconciler should move the trip to InProgress.
func (t *Trip) IsDueToStart(now time.Time) bool {
	return t.status == NotStarted && !t.schedule.StartAt.After(now)
}

// IsOverdue reports whether the reconciler should move the trip to CompletedLate.
func (t *Trip) IsOverdue(now time.Time) bool {
	return t.status == InProgress && t.schedule.EndAt.Before(now)
}

// Start is the reconciler's NotStarted -> InProgress step. The due check is repeated
// here so a row that changed since it was selected is left alone.
func (t *Trip) Start(now time.Time) (Transition, error) {
	if !t.IsDueToStart(now) {
		return Transition{}, errs.NewStateIsInvalidError("trip", t.status.String(), InProgress.String())
	}
	return t.ChangeStatus(InProgress, now)
}

// CompleteLate is the reconciler's InProgress -> CompletedLate step.
func (t *Trip) CompleteLate(now time.Time) (Transition, error) {
	if !t.IsOverdue(now) {
		return Transition{}, errs.NewStateIsInvalidError("trip", t.status.String(), CompletedLate.String())
	}
	return t.ChangeStatus(CompletedLate, now)
}

// SetNotes replaces the free-text notes.
func (t *Trip) SetNotes(notes string, now time.Time) {
	t.notes = strings.TrimSpace(notes)
	t.updatedAt = now
}

// ReplaceCargo swaps the whole cargo list. An empty list clears the cargo.
func (t *Trip) ReplaceCargo(cargo []*CargoItem, now time.Time) error {
	if err := validateCargo(cargo); err != nil {
		return err
	}
	t.cargo = cargo
	t.updatedAt = now
	return nil
}

func validateCargo(cargo []*CargoItem) error {
	for i, item := range cargo {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("cargo[%d]", i), err)
		}
	}
	return nil
}

func wrapRequired(param string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewValueIsRequiredErrorWithCause(param, err)
}
