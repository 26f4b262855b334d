package queries

import (
	"context"
	"errors"

	"fleet/internal/core/application/access"
	"fleet/internal/core/ports"
	"fleet/internal/pkg/errs"

	"gorm.io/gorm"
)

// ListInvoicesQueryHandler pages through a team's invoices, newest first.
type ListInvoicesQueryHandler struct {
	db         *gorm.DB
	authorizer ports.Authorizer
}

// NewListInvoicesQueryHandler creates a handler that reads from db.
func NewListInvoicesQueryHandler(db *gorm.DB, authorizer ports.Authorizer) ListInvoicesQueryHandler {
	return ListInvoicesQueryHandler{db: db, authorizer: authorizer}
}

func (h ListInvoicesQueryHandler) Handle(ctx context.Context, query ListInvoicesQuery) (ListInvoicesResponse, error) {
	if err := query.Validate(); err != nil {
		return ListInvoicesResponse{}, err
	}

	if err := access.RequireMember(ctx, h.authorizer, query.Actor(), query.TeamID()); err != nil {
		if errors.Is(err, access.ErrNotTeamMember) {
			return ListInvoicesResponse{}, errs.NewValueIsInvalidErrorWithCause("teamId", err)
		}
		return ListInvoicesResponse{}, err
	}

	var total int64
	err := h.db.WithContext(ctx).Raw(`SELECT count(*) FROM invoices WHERE team_id = ?`, query.TeamID().Bytes()).
		Scan(&total).Error
	if err != nil {
		return ListInvoicesResponse{}, err
	}

	page := query.Page()
	rows, err := h.db.WithContext(ctx).Raw(invoiceViewSelect+`
		WHERE i.team_id = ?
		ORDER BY i.created_at DESC, i.id
		LIMIT ? OFFSET ?
	`, query.TeamID().Bytes(), page.Limit(), page.Offset()).Rows()
	if err != nil {
		return ListInvoicesResponse{}, err
	}
	defer rows.Close()

	invoices := make([]InvoiceView, 0, page.Limit())
	for rows.Next() {
		view, scanErr := scanInvoiceView(rows)
		if scanErr != nil {
			return ListInvoicesResponse{}, scanErr
		}
		invoices = append(invoices, view)
	}

	if err = rows.Err(); err != nil {
		return ListInvoicesResponse{}, err
	}

	return ListInvoicesResponse{Invoices: invoices, PageInfo: newPageInfo(page, total)}, nil
}
