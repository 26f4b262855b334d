package http

import (
	"context"

	"fleet/internal/core/application/usecases/commands"
	"fleet/internal/core/application/usecases/queries"
	"fleet/internal/core/domain/model/invoice"
	"fleet/internal/core/domain/model/trip"
)

type CreateTripUseCase interface {
	Handle(ctx context.Context, command commands.CreateTripCommand) (*trip.Trip, error)
}

type UpdateTripUseCase interface {
	Handle(ctx context.Context, command commands.UpdateTripCommand) (*trip.Trip, error)
}

type UpdateTripStatusUseCase interface {
	Handle(ctx context.Context, command commands.UpdateTripStatusCommand) (*trip.Trip, error)
}

type CancelTripUseCase interface {
	Handle(ctx context.Context, command commands.CancelTripCommand) (*trip.Trip, error)
}

type GetTripUseCase interface {
	Handle(ctx context.Context, query queries.GetTripQuery) (queries.TripView, error)
}

type ListTripsUseCase interface {
	Handle(ctx context.Context, query queries.ListTripsQuery) (queries.ListTripsResponse, error)
}

type CreateInvoiceFromTripUseCase interface {
	Handle(ctx context.Context, command commands.CreateInvoiceFromTripCommand) (*invoice.Invoice, error)
}

type StampInvoiceUseCase interface {
	Handle(ctx context.Context, command commands.StampInvoiceCommand) (*invoice.Invoice, error)
}

type RetryInvoiceStampUseCase interface {
	Handle(ctx context.Context, command commands.RetryInvoiceStampCommand) (*invoice.Invoice, error)
}

type CancelInvoiceUseCase interface {
	Handle(ctx context.Context, command commands.CancelInvoiceCommand) (*invoice.Invoice, error)
}

type GetInvoiceUseCase interface {
	Handle(ctx context.Context, query queries.GetInvoiceQuery) (queries.InvoiceView, error)
}

type ListInvoicesUseCase interface {
	Handle(ctx context.Context, query queries.ListInvoicesQuery) (queries.ListInvoicesResponse, error)
}

// UseCases groups the application handlers the server dispatches to.
type UseCases struct {
	CreateTrip       CreateTripUseCase
	UpdateTrip       UpdateTripUseCase
	UpdateTripStatus UpdateTripStatusUseCase
	CancelTrip       CancelTripUseCase
	GetTrip          GetTripUseCase
	ListTrips        ListTripsUseCase

	CreateInvoiceFromTrip CreateInvoiceFromTripUseCase
	StampInvoice          StampInvoiceUseCase
	RetryInvoiceStamp     RetryInvoiceStampUseCase
	CancelInvoice         CancelInvoiceUseCase
	GetInvoice            GetInvoiceUseCase
	ListInvoices          ListInvoicesUseCase
}
