package invoice

import (
	"fmt"

	"fleet/internal/pkg/errs"
)

// Status is the stamping lifecycle of an invoice. Unknown is the zero value and is
// never stored.
type Status int

const (
	Unknown Status = iota
	Draft
	Pending
	Stamped
	Error
	Cancelled
)

var statusNames = map[Status]string{
	Draft:     "DRAFT",
	Pending:   "PENDING",
	Stamped:   "STAMPED",
	Error:     "ERROR",
	Cancelled: "CANCELLED",
}

// transitions lists the only moves the aggregate makes.
var transitions = map[Status][]Status{
	Draft:   {Pending},
	Pending: {Stamped, Error},
	Error:   {Draft},
	Stamped: {Cancelled},
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseStatus accepts the names String returns.
func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid invoice status", name))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid invoice status", s))
	}
	return nil
}

// TransitionTo returns target if the table allows it.
func (s Status) TransitionTo(target Status) (Status, error) {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return target, nil
		}
	}
	return Unknown, errs.NewStateIsInvalidError("invoice", s.String(), target.String())
}
