package commands

import (
	"errors"
	"time"

	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

var ErrReconcileTripStatusesCommandIsNotConstructed = errors.New(
	"ReconcileTripStatusesCommand must be created via NewReconcileTripStatusesCommand constructor",
)

// ReconcileTripStatusesCommand advances trips whose schedule has passed as of Now.
type ReconcileTripStatusesCommand struct {
	now time.Time

	guard guard.ConstructorGuard
}

func NewReconcileTripStatusesCommand(now time.Time) (ReconcileTripStatusesCommand, error) {
	if now.IsZero() {
		return ReconcileTripStatusesCommand{}, errs.NewValueIsRequiredError("now")
	}
	return ReconcileTripStatusesCommand{
		now:   now,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c ReconcileTripStatusesCommand) Validate() error {
	return c.guard.Validate(ErrReconcileTripStatusesCommandIsNotConstructed)
}

func (c ReconcileTripStatusesCommand) Now() time.Time {
	return c.now
}
