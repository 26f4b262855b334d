package http

import (
	"net/http"

	"fleet/internal/core/application/usecases/commands"
	"fleet/internal/core/application/usecases/queries"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreateTrip handles POST /api/v1/trips.
func (s *Server) CreateTrip(c echo.Context) error {
	var req newTripRequest
	if err := c.Bind(&req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	cmd, err := req.toCommand(actorFrom(c))
	if err != nil {
		return err
	}

	created, err := s.useCases.CreateTrip.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	s.record(c, "trip.created", "trip", created.ID(), created.TeamID(), map[string]any{
		"driverId":  created.Assignment().Driver.String(),
		"vehicleId": created.Assignment().Vehicle.String(),
		"status":    created.Status().String(),
	})
	return c.JSON(http.StatusCreated, newTripResponse(created))
}

// ListTrips handles GET /api/v1/trips.
func (s *Server) ListTrips(c echo.Context) error {
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

	query, err := queries.NewListTripsQuery(actorFrom(c), teamID, page, deref(params.Search), deref(params.Status))
	if err != nil {
		return err
	}

	resp, err := s.useCases.ListTrips.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newPageResponse(resp.Trips, resp.PageInfo, newTripDetailsResponse))
}

// GetTrip handles GET /api/v1/trips/:id.
func (s *Server) GetTrip(c echo.Context) error {
	tripID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetTripQuery(actorFrom(c), tripID)
	if err != nil {
		return err
	}

	view, err := s.useCases.GetTrip.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newTripDetailsResponse(view))
}

// UpdateTrip handles PUT /api/v1/trips/:id. Only notes and cargo are editable.
func (s *Server) UpdateTrip(c echo.Context) error {
	tripID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateTripRequest
	if err = c.Bind(&req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	cmd, err := commands.NewUpdateTripCommand(actorFrom(c), tripID, req.Notes, cargoInputs(req.Cargo))
	if err != nil {
		return err
	}

	updated, err := s.useCases.UpdateTrip.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	s.record(c, "trip.updated", "trip", updated.ID(), updated.TeamID(), map[string]any{
		"notesChanged": req.Notes != nil,
		"cargoChanged": req.Cargo != nil,
	})
	return c.JSON(http.StatusOK, newTripResponse(updated))
}

// UpdateTripStatus handles PATCH /api/v1/trips/:id/status.
func (s *Server) UpdateTripStatus(c echo.Context) error {
	tripID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateTripStatusRequest
	if err = c.Bind(&req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	status, err := trip.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateTripStatusCommand(actorFrom(c), tripID, status)
	if err != nil {
		return err
	}

	updated, err := s.useCases.UpdateTripStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	s.record(c, "trip.status_changed", "trip", updated.ID(), updated.TeamID(), map[string]any{
		"status": updated.Status().String(),
	})
	return c.JSON(http.StatusOK, newTripResponse(updated))
}

// CancelTrip handles DELETE /api/v1/trips/:id. Trips are never deleted; the
// trip is cancelled and its driver and vehicle released.
func (s *Server) CancelTrip(c echo.Context) error {
	tripID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewCancelTripCommand(actorFrom(c), tripID)
	if err != nil {
		return err
	}

	cancelled, err := s.useCases.CancelTrip.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	s.record(c, "trip.cancelled", "trip", cancelled.ID(), cancelled.TeamID(), nil)
	return c.JSON(http.StatusOK, newTripResponse(cancelled))
}
