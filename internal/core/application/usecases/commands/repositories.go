// Package commands contains the operations that change trip, resource and invoice state.
// Every handler validates its command, opens a unit of work, and commits or rolls back
// as a whole.
package commands

import (
	"context"

	"fleet/internal/core/ports"
)

type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	TripRepoFactory interface {
		TripRepository() ports.TripRepository
	}

	ResourceRegistryFactory interface {
		ResourceRegistry() ports.ResourceRegistry
	}

	InvoiceRepoFactory interface {
		InvoiceRepository() ports.InvoiceRepository
	}

	// TripUoW covers operations that move trips and the resources they hold.
	//
	// Example:
	//
	//	uow := factory.Create()
	//	if err := uow.Begin(ctx); err != nil {
	//	    return err
	//	}
	//	defer func() { _ = uow.Rollback(ctx) }()
	//
	//	if err := uow.ResourceRegistry().Reserve(ctx, driverRef, tripID); err != nil {
	//	    return err
	//	}
	//	if err := uow.TripRepository().Add(ctx, t); err != nil {
	//	    return err
	//	}
	//	return uow.Commit(ctx)
	TripUoW interface {
		TxManager
		TripRepoFactory
		ResourceRegistryFactory
	}

	TripUoWFactory interface {
		Create() TripUoW
	}

	// InvoiceUoW covers invoice operations, which read the trip they bill.
	InvoiceUoW interface {
		TxManager
		TripRepoFactory
		InvoiceRepoFactory
	}

	InvoiceUoWFactory interface {
		Create() InvoiceUoW
	}
)
