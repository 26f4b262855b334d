// Package ports defines the contracts between the application core and its adapters.
package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a single database transaction. Repositories obtained from it
// after Begin share that transaction. Rollback after Commit returns an error
// that deferred rollbacks ignore.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	TripRepository() TripRepository
	ResourceRegistry() ResourceRegistry
	InvoiceRepository() InvoiceRepository
}
