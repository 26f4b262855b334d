package http

import (
	"time"

	"fleet/internal/core/application/usecases/commands"
	"fleet/internal/core/application/usecases/queries"
	"fleet/internal/core/domain/model/invoice"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type cargoRequest struct {
	Name     string  `json:"name"`
	WeightKg float64 `json:"weightKg"`
	ImageURL string  `json:"imageUrl"`
	Notes    string  `json:"notes"`
}

func cargoInputs(in []cargoRequest) []commands.CargoInput {
	if in == nil {
		return nil
	}
	out := make([]commands.CargoInput, 0, len(in))
	for _, c := range in {
		out = append(out, commands.CargoInput{Name: c.Name, WeightKg: c.WeightKg, ImageURL: c.ImageURL, Notes: c.Notes})
	}
	return out
}

type newTripRequest struct {
	TeamID    uuid.UUID       `json:"teamId"`
	ClientID  uuid.UUID       `json:"clientId"`
	DriverID  uuid.UUID       `json:"driverId"`
	VehicleID uuid.UUID       `json:"vehicleId"`
	RouteID   uuid.UUID       `json:"routeId"`
	Price     decimal.Decimal `json:"price"`
	StartAt   time.Time       `json:"startAt"`
	EndAt     time.Time       `json:"endAt"`
	Notes     string          `json:"notes"`
	Cargo     []cargoRequest  `json:"cargo"`
}

func (r newTripRequest) toCommand(actor kernel.UUID) (commands.CreateTripCommand, error) {
	var (
		assignment trip.Assignment
		err        error
	)
	if assignment.Team, err = toID("teamId", r.TeamID); err != nil {
		return commands.CreateTripCommand{}, err
	}
	if assignment.Client, err = toID("clientId", r.ClientID); err != nil {
		return commands.CreateTripCommand{}, err
	}
	if assignment.Driver, err = toID("driverId", r.DriverID); err != nil {
		return commands.CreateTripCommand{}, err
	}
	if assignment.Vehicle, err = toID("vehicleId", r.VehicleID); err != nil {
		return commands.CreateTripCommand{}, err
	}
	if assignment.Route, err = toID("routeId", r.RouteID); err != nil {
		return commands.CreateTripCommand{}, err
	}

	price, err := kernel.NewMoney(r.Price)
	if err != nil {
		return commands.CreateTripCommand{}, err
	}

	return commands.NewCreateTripCommand(
		actor,
		assignment,
		trip.Schedule{StartAt: r.StartAt, EndAt: r.EndAt},
		price,
		r.Notes,
		cargoInputs(r.Cargo),
	)
}

type updateTripRequest struct {
	Notes *string        `json:"notes"`
	Cargo []cargoRequest `json:"cargo"`
}

type updateTripStatusRequest struct {
	Status string `json:"status"`
}

type cancelInvoiceRequest struct {
	Reason string `json:"reason"`
}

type cargoResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	WeightKg float64 `json:"weightKg"`
	ImageURL string  `json:"imageUrl,omitempty"`
	Notes    string  `json:"notes,omitempty"`
}

type tripResponse struct {
	ID        string          `json:"id"`
	TeamID    string          `json:"teamId"`
	ClientID  string          `json:"clientId"`
	DriverID  string          `json:"driverId"`
	VehicleID string          `json:"vehicleId"`
	RouteID   string          `json:"routeId"`
	Price     string          `json:"price"`
	StartAt   time.Time       `json:"startAt"`
	EndAt     time.Time       `json:"endAt"`
	Notes     string          `json:"notes"`
	Status    string          `json:"status"`
	Cargo     []cargoResponse `json:"cargo"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func newTripResponse(t *trip.Trip) tripResponse {
	a := t.Assignment()
	cargo := make([]cargoResponse, 0, len(t.Cargo()))
	for _, c := range t.Cargo() {
		cargo = append(cargo, cargoResponse{
			ID:       c.ID().String(),
			Name:     c.Name(),
			WeightKg: c.WeightKg(),
			ImageURL: c.ImageURL(),
			Notes:    c.Notes(),
		})
	}
	return tripResponse{
		ID:        t.ID().String(),
		TeamID:    a.Team.String(),
		ClientID:  a.Client.String(),
		DriverID:  a.Driver.String(),
		VehicleID: a.Vehicle.String(),
		RouteID:   a.Route.String(),
		Price:     t.Price().String(),
		StartAt:   t.Schedule().StartAt,
		EndAt:     t.Schedule().EndAt,
		Notes:     t.Notes(),
		Status:    t.Status().String(),
		Cargo:     cargo,
		CreatedAt: t.CreatedAt(),
		UpdatedAt: t.UpdatedAt(),
	}
}

type namedResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type vehicleResponse struct {
	ID    string `json:"id"`
	Plate string `json:"plate"`
	Brand string `json:"brand,omitempty"`
	Model string `json:"model,omitempty"`
}

type tripDetailsResponse struct {
	ID        string          `json:"id"`
	TeamID    string          `json:"teamId"`
	Client    namedResponse   `json:"client"`
	Driver    namedResponse   `json:"driver"`
	Vehicle   vehicleResponse `json:"vehicle"`
	Route     namedResponse   `json:"route"`
	Price     string          `json:"price"`
	StartAt   time.Time       `json:"startAt"`
	EndAt     time.Time       `json:"endAt"`
	Notes     string          `json:"notes"`
	Status    string          `json:"status"`
	Cargo     []cargoResponse `json:"cargo"`
	InvoiceID *string         `json:"invoiceId,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func newTripDetailsResponse(v queries.TripView) tripDetailsResponse {
	cargo := make([]cargoResponse, 0, len(v.Cargo))
	for _, c := range v.Cargo {
		cargo = append(cargo, cargoResponse{
			ID:       c.ID.String(),
			Name:     c.Name,
			WeightKg: c.WeightKg,
			ImageURL: c.ImageURL,
			Notes:    c.Notes,
		})
	}

	var invoiceID *string
	if v.InvoiceID != nil {
		id := v.InvoiceID.String()
		invoiceID = &id
	}

	return tripDetailsResponse{
		ID:        v.ID.String(),
		TeamID:    v.TeamID.String(),
		Client:    namedResponse{ID: v.Client.ID.String(), Name: v.Client.Name},
		Driver:    namedResponse{ID: v.Driver.ID.String(), Name: v.Driver.Name},
		Vehicle:   vehicleResponse{ID: v.Vehicle.ID.String(), Plate: v.Vehicle.Plate, Brand: v.Vehicle.Brand, Model: v.Vehicle.Model},
		Route:     namedResponse{ID: v.Route.ID.String(), Name: v.Route.Name},
		Price:     v.Price.String(),
		StartAt:   v.StartAt,
		EndAt:     v.EndAt,
		Notes:     v.Notes,
		Status:    v.Status.String(),
		Cargo:     cargo,
		InvoiceID: invoiceID,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

type pageResponse[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

func newPageResponse[V, T any](items []V, info queries.PageInfo, convert func(V) T) pageResponse[T] {
	data := make([]T, 0, len(items))
	for _, item := range items {
		data = append(data, convert(item))
	}
	return pageResponse[T]{
		Data:       data,
		Total:      info.Total,
		Page:       info.Page,
		Limit:      info.Limit,
		TotalPages: info.TotalPages,
	}
}

type invoiceResponse struct {
	ID                 string     `json:"id"`
	TripID             string     `json:"tripId"`
	TeamID             string     `json:"teamId"`
	Subtotal           string     `json:"subtotal"`
	Tax                string     `json:"tax"`
	Total              string     `json:"total"`
	Status             string     `json:"status"`
	ExternalID         string     `json:"externalId,omitempty"`
	Number             string     `json:"number,omitempty"`
	Folio              string     `json:"folio,omitempty"`
	FiscalUUID         string     `json:"fiscalUuid,omitempty"`
	RemotePDFURL       string     `json:"remotePdfUrl,omitempty"`
	RemoteXMLURL       string     `json:"remoteXmlUrl,omitempty"`
	PDFURL             string     `json:"pdfUrl,omitempty"`
	XMLURL             string     `json:"xmlUrl,omitempty"`
	FailureReason      string     `json:"failureReason,omitempty"`
	CancellationReason string     `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

func newInvoiceResponse(i *invoice.Invoice) invoiceResponse {
	issued, artifacts := i.Issued(), i.Artifacts()
	return invoiceResponse{
		ID:                 i.ID().String(),
		TripID:             i.TripID().String(),
		TeamID:             i.TeamID().String(),
		Subtotal:           i.Subtotal().String(),
		Tax:                i.Tax().String(),
		Total:              i.Total().String(),
		Status:             i.Status().String(),
		ExternalID:         issued.ExternalID,
		Number:             issued.Number,
		Folio:              issued.Folio,
		FiscalUUID:         issued.FiscalUUID,
		RemotePDFURL:       issued.PDFURL,
		RemoteXMLURL:       issued.XMLURL,
		PDFURL:             artifacts.PDFURL,
		XMLURL:             artifacts.XMLURL,
		FailureReason:      i.FailureReason(),
		CancellationReason: i.CancellationReason(),
		CancelledAt:        i.CancelledAt(),
		CreatedAt:          i.CreatedAt(),
		UpdatedAt:          i.UpdatedAt(),
	}
}

type invoicedTripResponse struct {
	ClientName   string    `json:"clientName"`
	DriverName   string    `json:"driverName"`
	VehiclePlate string    `json:"vehiclePlate"`
	StartAt      time.Time `json:"startAt"`
	EndAt        time.Time `json:"endAt"`
}

type invoiceDetailsResponse struct {
	invoiceResponse
	Trip invoicedTripResponse `json:"trip"`
}

func newInvoiceDetailsResponse(v queries.InvoiceView) invoiceDetailsResponse {
	return invoiceDetailsResponse{
		invoiceResponse: invoiceResponse{
			ID:                 v.ID.String(),
			TripID:             v.TripID.String(),
			TeamID:             v.TeamID.String(),
			Subtotal:           v.Subtotal.String(),
			Tax:                v.Tax.String(),
			Total:              v.Total.String(),
			Status:             v.Status.String(),
			ExternalID:         v.Issued.ExternalID,
			Number:             v.Issued.Number,
			Folio:              v.Issued.Folio,
			FiscalUUID:         v.Issued.FiscalUUID,
			RemotePDFURL:       v.Issued.PDFURL,
			RemoteXMLURL:       v.Issued.XMLURL,
			PDFURL:             v.Artifacts.PDFURL,
			XMLURL:             v.Artifacts.XMLURL,
			FailureReason:      v.FailureReason,
			CancellationReason: v.CancellationReason,
			CancelledAt:        v.CancelledAt,
			CreatedAt:          v.CreatedAt,
			UpdatedAt:          v.UpdatedAt,
		},
		Trip: invoicedTripResponse{
			ClientName:   v.Trip.ClientName,
			DriverName:   v.Trip.DriverName,
			VehiclePlate: v.Trip.VehiclePlate,
			StartAt:      v.Trip.StartAt,
			EndAt:        v.Trip.EndAt,
		},
	}
}
