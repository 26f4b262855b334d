package queries

import (
	"context"
	"errors"

	"fleet/internal/core/application/access"
	"fleet/internal/core/ports"
	"fleet/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetInvoiceQueryHandler loads one invoice the actor can see.
type GetInvoiceQueryHandler struct {
	db         *gorm.DB
	authorizer ports.Authorizer
}

func NewGetInvoiceQueryHandler(db *gorm.DB, authorizer ports.Authorizer) GetInvoiceQueryHandler {
	return GetInvoiceQueryHandler{db: db, authorizer: authorizer}
}

func (h GetInvoiceQueryHandler) Handle(ctx context.Context, query GetInvoiceQuery) (InvoiceView, error) {
	if err := query.Validate(); err != nil {
		return InvoiceView{}, err
	}

	notFound := errs.NewObjectNotFoundError("invoice", query.InvoiceID().String())

	rows, err := h.db.WithContext(ctx).Raw(invoiceViewSelect+`
		WHERE i.id = ?
	`, query.InvoiceID().Bytes()).Rows()
	if err != nil {
		return InvoiceView{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return InvoiceView{}, err
		}
		return InvoiceView{}, notFound
	}
	view, err := scanInvoiceView(rows)
	if err != nil {
		return InvoiceView{}, err
	}

	if err = access.RequireMember(ctx, h.authorizer, query.Actor(), view.TeamID); err != nil {
		if errors.Is(err, access.ErrNotTeamMember) {
			return InvoiceView{}, notFound
		}
		return InvoiceView{}, err
	}
	return view, nil
}
