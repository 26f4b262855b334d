package ports

import (
	"context"
	"time"

	"fleet/internal/core/domain/model/invoice"
	"fleet/internal/core/domain/model/kernel"
)

type InvoiceRepository interface {
	// Add returns errs.ConflictError when the trip already has an invoice.
	Add(ctx context.Context, inv *invoice.Invoice) error
	Update(ctx context.Context, inv *invoice.Invoice) error
	Get(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error)

	// GetForUpdate is Get with a row lock held until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error)
	GetByTrip(ctx context.Context, tripID kernel.UUID) (*invoice.Invoice, error)

	// ListStuckPending locks Pending invoices last updated before olderThan,
	// skipping rows locked elsewhere.
	ListStuckPending(ctx context.Context, olderThan time.Time) ([]*invoice.Invoice, error)
}
