package trip

import (
	"fmt"

	"fleet/internal/pkg/errs"
)

// Status is the lifecycle state of a trip.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	NotStarted
	InProgress
	CompletedOnTime
	CompletedLate
	Cancelled
)

var statusNames = map[Status]string{
	NotStarted:      "NOT_STARTED",
	InProgress:      "IN_PROGRESS",
	CompletedOnTime: "COMPLETED_ON_TIME",
	CompletedLate:   "COMPLETED_LATE",
	Cancelled:       "CANCELLED",
}

// String returns the wire and persistence name, e.g. "IN_PROGRESS".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseStatus is the inverse of String. Unknown names are a validation error.
func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid trip status", name))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid trip status", s))
	}
	return nil
}

// IsTerminal reports whether the trip no longer holds its driver and vehicle.
func (s Status) IsTerminal() bool {
	return s == CompletedOnTime || s == CompletedLate || s == Cancelled
}

// IsCompleted reports whether the trip finished, on time or late.
func (s Status) IsCompleted() bool {
	return s == CompletedOnTime || s == CompletedLate
}

// CanTransitionTo reports whether moving from s to target is allowed.
// Same-status writes are allowed and treated as no-ops by Trip.ChangeStatus.
func (s Status) CanTransitionTo(target Status) bool {
	if s.Validate() != nil || target.Validate() != nil {
		return false
	}
	if s == target {
		return true
	}
	switch s {
	case NotStarted, InProgress:
		return true
	case CompletedOnTime:
		return target == CompletedLate
	case CompletedLate:
		return target == CompletedOnTime
	default:
		return false
	}
}

// TransitionTo returns target when the move is allowed and a StateIsInvalidError otherwise.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewStateIsInvalidError("trip", s.String(), target.String())
	}
	return target, nil
}
