package queries

import (
	"errors"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

var ErrListInvoicesQueryIsNotConstructed = errors.New(
	"ListInvoicesQuery must be created via NewListInvoicesQuery constructor",
)

// ListInvoicesQuery pages through a team's invoices, newest first.
type ListInvoicesQuery struct {
	actor  kernel.UUID
	teamID kernel.UUID
	page   Page

	guard guard.ConstructorGuard
}

func NewListInvoicesQuery(actor, teamID kernel.UUID, page Page) (ListInvoicesQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListInvoicesQuery{}, errs.NewValueIsRequiredErrorWithCause("actor", err)
	}
	if err := teamID.Validate(); err != nil {
		return ListInvoicesQuery{}, errs.NewValueIsRequiredErrorWithCause("teamId", err)
	}
	return ListInvoicesQuery{actor: actor, teamID: teamID, page: page.orDefault(), guard: guard.NewConstructorGuard()}, nil
}

func (q ListInvoicesQuery) Validate() error {
	return q.guard.Validate(ErrListInvoicesQueryIsNotConstructed)
}

func (q ListInvoicesQuery) Actor() kernel.UUID { return q.actor }
func (q ListInvoicesQuery) TeamID() kernel.UUID { return q.teamID }
func (q ListInvoicesQuery) Page() Page { return q.page }

type ListInvoicesResponse struct {
	Invoices []InvoiceView
	PageInfo
}
