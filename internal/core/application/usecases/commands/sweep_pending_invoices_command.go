package commands

import (
	"errors"
	"fmt"
	"time"

	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

var ErrSweepPendingInvoicesCommandIsNotConstructed = errors.New(
	"SweepPendingInvoicesCommand must be created via NewSweepPendingInvoicesCommand constructor",
)

// SweepPendingInvoicesCommand fails invoices left in Pending for longer than MaxAge,
// which happens when the process stops between submitting and recording a stamp.
type SweepPendingInvoicesCommand struct {
	now    time.Time
	maxAge time.Duration

	guard guard.ConstructorGuard
}

func NewSweepPendingInvoicesCommand(now time.Time, maxAge time.Duration) (SweepPendingInvoicesCommand, error) {
	if now.IsZero() {
		return SweepPendingInvoicesCommand{}, errs.NewValueIsRequiredError("now")
	}
	if maxAge <= 0 {
		return SweepPendingInvoicesCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"maxAge", fmt.Errorf("%s is not positive", maxAge))
	}
	return SweepPendingInvoicesCommand{now: now, maxAge: maxAge, guard: guard.NewConstructorGuard()}, nil
}

func (c SweepPendingInvoicesCommand) Validate() error {
	return c.guard.Validate(ErrSweepPendingInvoicesCommandIsNotConstructed)
}

func (c SweepPendingInvoicesCommand) Now() time.Time { return c.now }
func (c SweepPendingInvoicesCommand) MaxAge() time.Duration { return c.maxAge }
