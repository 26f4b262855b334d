package http

import (
	"log/slog"
	"net/http"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Server translates HTTP requests into commands and queries.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	useCases UseCases
	audit    ports.AuditLog
	clock    kernel.Clock
	logger   *slog.Logger
}

func NewServer(useCases UseCases, audit ports.AuditLog, clock kernel.Clock, logger *slog.Logger) *Server {
	return &Server{
		useCases: useCases,
		audit:    audit,
		clock:    clock,
		logger:   logger.With("component", "http"),
	}
}

// NewEcho builds the router: health and docs at the root, the API under /api/v1
// behind actor extraction and OpenAPI request validation.
func NewEcho(server *Server) (*echo.Echo, error) {
	doc, err := loadOpenAPI()
	if err != nil {
		return nil, err
	}
	validate, err := requestValidator(doc)
	if err != nil {
		return nil, err
	}
	if err = registerDocs(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = server.handleError

	e.Use(middleware.Recover())
	e.Use(requestLogger(server.logger))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/api/v1", requireActor, validate)

	v1.POST("/trips", server.CreateTrip)
	v1.GET("/trips", server.ListTrips)
	v1.GET("/trips/:id", server.GetTrip)
	v1.PUT("/trips/:id", server.UpdateTrip)
	v1.PATCH("/trips/:id/status", server.UpdateTripStatus)
	v1.DELETE("/trips/:id", server.CancelTrip)

	v1.GET("/invoices", server.ListInvoices)
	v1.GET("/invoices/:id", server.GetInvoice)
	v1.POST("/invoices/create-from-trip/:tripId", server.CreateInvoiceFromTrip)
	v1.POST("/invoices/:id/stamp", server.StampInvoice)
	v1.POST("/invoices/:id/retry", server.RetryInvoiceStamp)
	v1.POST("/invoices/:id/cancel", server.CancelInvoice)

	return e, nil
}
