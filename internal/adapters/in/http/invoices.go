package http

import (
	"net/http"

	"fleet/internal/core/application/usecases/commands"
	"fleet/internal/core/application/usecases/queries"
	"fleet/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ListInvoices handles GET /api/v1/invoices.
func (s *Server) ListInvoices(c echo.Context) error {
	params, err := bindListParams(c)
	if err != nil {
		return err
	}
	teamID, err := params.teamID()
	if err != nil {
		return err
	}
	page, err := params.page()
	if err != nil {
		return err
	}

	query, err := queries.NewListInvoicesQuery(actorFrom(c), teamID, page)
	if err != nil {
		return err
	}

	resp, err := s.useCases.ListInvoices.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newPageResponse(resp.Invoices, resp.PageInfo, newInvoiceDetailsResponse))
}

// GetInvoice handles GET /api/v1/invoices/:id.
func (s *Server) GetInvoice(c echo.Context) error {
	invoiceID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetInvoiceQuery(actorFrom(c), invoiceID)
	if err != nil {
		return err
	}

	view, err := s.useCases.GetInvoice.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newInvoiceDetailsResponse(view))
}

// CreateInvoiceFromTrip handles POST /api/v1/invoices/create-from-trip/:tripId.
func (s *Server) CreateInvoiceFromTrip(c echo.Context) error {
	tripID, err := pathID(c, "tripId")
	if err != nil {
		return err
	}
	actor := actorFrom(c)
	cmd, err := commands.NewCreateInvoiceFromTripCommand(&actor, tripID)
	if err != nil {
		return err
	}

	created, err := s.useCases.CreateInvoiceFromTrip.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	s.record(c, "invoice.created", "invoice", created.ID(), created.TeamID(), map[string]any{
		"tripId": created.TripID().String(),
		"total":  created.Total().String(),
	})
	return c.JSON(http.StatusCreated, newInvoiceResponse(created))
}

// StampInvoice handles POST /api/v1/invoices/:id/stamp. A failed stamp leaves the
// invoice in ERROR and answers with the failure.
func (s *Server) StampInvoice(c echo.Context) error {
	invoiceID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	actor := actorFrom(c)
	cmd, err := commands.NewStampInvoiceCommand(&actor, invoiceID)
	if err != nil {
		return err
	}

	stamped, err := s.useCases.StampInvoice.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	s.record(c, "invoice.stamped", "invoice", stamped.ID(), stamped.TeamID(), map[string]any{
		"externalId": stamped.Issued().ExternalID,
		"fiscalUuid": stamped.Issued().FiscalUUID,
	})
	return c.JSON(http.StatusOK, newInvoiceResponse(stamped))
}

// RetryInvoiceStamp handles POST /api/v1/invoices/:id/retry.
func (s *Server) RetryInvoiceStamp(c echo.Context) error {
	invoiceID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	actor := actorFrom(c)
	cmd, err := commands.NewRetryInvoiceStampCommand(&actor, invoiceID)
	if err != nil {
		return err
	}

	reset, err := s.useCases.RetryInvoiceStamp.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	s.record(c, "invoice.retry", "invoice", reset.ID(), reset.TeamID(), nil)
	return c.JSON(http.StatusOK, newInvoiceResponse(reset))
}

// CancelInvoice handles POST /api/v1/invoices/:id/cancel.
func (s *Server) CancelInvoice(c echo.Context) error {
	invoiceID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req cancelInvoiceRequest
	if err = c.Bind(&req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	actor := actorFrom(c)
	cmd, err := commands.NewCancelInvoiceCommand(&actor, invoiceID, req.Reason)
	if err != nil {
		return err
	}

	cancelled, err := s.useCases.CancelInvoice.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	s.record(c, "invoice.cancelled", "invoice", cancelled.ID(), cancelled.TeamID(), map[string]any{
		"reason": cancelled.CancellationReason(),
	})
	return c.JSON(http.StatusOK, newInvoiceResponse(cancelled))
}
