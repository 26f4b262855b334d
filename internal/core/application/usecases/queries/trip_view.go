package queries

import (
	"database/sql"
	"time"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TripView is a trip with the display names of the entities it references.
type TripView struct {
	ID        kernel.UUID
	TeamID    kernel.UUID
	Client    NamedRef
	Driver    NamedRef
	Vehicle   VehicleRef
	Route     NamedRef
	Price     kernel.Money
	StartAt   time.Time
	EndAt     time.Time
	Notes     string
	Status    trip.Status
	Cargo     []CargoView
	InvoiceID *kernel.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

type NamedRef struct {
	ID   kernel.UUID
	Name string
}

type VehicleRef struct {
	ID    kernel.UUID
	Plate string
	Brand string
	Model string
}

type CargoView struct {
	ID       kernel.UUID
	Name     string
	WeightKg float64
	ImageURL string
	Notes    string
}

const tripViewSelect = `
	SELECT
		t.id, t.team_id,
		t.client_id, c.name,
		t.driver_id, d.name,
		t.vehicle_id, v.plate, v.brand, v.model,
		t.route_id, r.name,
		t.price, t.start_at, t.end_at, t.notes, t.status,
		i.id,
		t.created_at, t.updated_at
	FROM trips t
	JOIN clients c ON c.id = t.client_id
	JOIN drivers d ON d.id = t.driver_id
	JOIN vehicles v ON v.id = t.vehicle_id
	JOIN routes r ON r.id = t.route_id
	LEFT JOIN invoices i ON i.trip_id = t.id`

func scanTripView(rows *sql.Rows) (TripView, error) {
	var (
		view                                               TripView
		id, teamID, clientID, driverID, vehicleID, routeID uuid.UUID
		invoiceID                                          *uuid.UUID
		price                                              decimal.Decimal
		status                                             string
	)
	err := rows.Scan(
		&id, &teamID,
		&clientID, &view.Client.Name,
		&driverID, &view.Driver.Name,
		&vehicleID, &view.Vehicle.Plate, &view.Vehicle.Brand, &view.Vehicle.Model,
		&routeID, &view.Route.Name,
		&price, &view.StartAt, &view.EndAt, &view.Notes, &status,
		&invoiceID,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return TripView{}, err
	}

	ids := []*kernel.UUID{&view.ID, &view.TeamID, &view.Client.ID, &view.Driver.ID, &view.Vehicle.ID, &view.Route.ID}
	for i, raw := range []uuid.UUID{id, teamID, clientID, driverID, vehicleID, routeID} {
		parsed, idErr := kernel.UUIDFromRaw(raw)
		if idErr != nil {
			return TripView{}, idErr
		}
		*ids[i] = parsed
	}

	if invoiceID != nil {
		parsed, idErr := kernel.UUIDFromRaw(*invoiceID)
		if idErr != nil {
			return TripView{}, idErr
		}
		view.InvoiceID = &parsed
	}

	if view.Price, err = kernel.NewMoney(price); err != nil {
		return TripView{}, err
	}
	if view.Status, err = trip.ParseStatus(status); err != nil {
		return TripView{}, err
	}

	view.StartAt = view.StartAt.UTC()
	view.EndAt = view.EndAt.UTC()
	view.CreatedAt = view.CreatedAt.UTC()
	view.UpdatedAt = view.UpdatedAt.UTC()
	return view, nil
}
