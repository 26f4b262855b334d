package commands

import (
	"context"
	"errors"
	"log/slog"

	"fleet/internal/core/application/access"
	"fleet/internal/core/domain/model/invoice"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/ports"
	"fleet/internal/pkg/errs"
)

// CreateInvoiceFromTripCommandHandler creates the Draft invoice of a trip.
//
// At most one invoice exists per trip: an existing invoice yields errs.ConflictError,
// and the unique index on trip_id turns a lost race into the same error.
// A team without fiscal data still gets its draft; stamping will fail until the
// profile is configured, so only a warning is logged here.
type CreateInvoiceFromTripCommandHandler struct {
	uowFactory InvoiceUoWFactory
	authorizer ports.Authorizer
	directory  ports.Directory
	clock      kernel.Clock
	logger     *slog.Logger
}

// NewCreateInvoiceFromTripCommandHandler creates a handler backed by uowFactory.
func NewCreateInvoiceFromTripCommandHandler(
	uowFactory InvoiceUoWFactory,
	authorizer ports.Authorizer,
	directory ports.Directory,
	clock kernel.Clock,
	logger *slog.Logger,
) CreateInvoiceFromTripCommandHandler {
	return CreateInvoiceFromTripCommandHandler{
		uowFactory: uowFactory,
		authorizer: authorizer,
		directory:  directory,
		clock:      clock,
		logger:     logger.With("component", "create_invoice_from_trip"),
	}
}

func (h CreateInvoiceFromTripCommandHandler) Handle(
	ctx context.Context,
	command CreateInvoiceFromTripCommand,
) (*invoice.Invoice, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	t, err := uow.TripRepository().Get(ctx, command.TripID())
	if err != nil {
		return nil, err
	}

	if actor := command.Actor(); actor != nil {
		if err = access.RequireMember(ctx, h.authorizer, *actor, t.TeamID()); err != nil {
			if errors.Is(err, access.ErrNotTeamMember) {
				return nil, errs.NewObjectNotFoundError("trip", command.TripID().String())
			}
			return nil, err
		}
	}

	invoices := uow.InvoiceRepository()
	existing, err := invoices.GetByTrip(ctx, t.ID())
	switch {
	case err == nil:
		return nil, errs.NewConflictError("invoice for trip", existing.TripID().String())
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, err
	}

	if _, err = h.directory.FiscalProfile(ctx, t.TeamID()); err != nil {
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return nil, err
		}
		h.logger.WarnContext(ctx, "team has no fiscal profile, invoice cannot be stamped yet",
			"team_id", t.TeamID().String(), "trip_id", t.ID().String())
	}

	inv, err := invoice.NewInvoice(t.ID(), t.TeamID(), t.Price(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	if err = invoices.Add(ctx, inv); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return inv, nil
}
