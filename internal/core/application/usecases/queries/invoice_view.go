package queries

import (
	"database/sql"
	"time"

	"fleet/internal/core/domain/model/invoice"
	"fleet/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceView is the read model of an invoice.
type InvoiceView struct {
	ID                 kernel.UUID
	TripID             kernel.UUID
	TeamID             kernel.UUID
	Subtotal           kernel.Money
	Tax                kernel.Money
	Total              kernel.Money
	Status             invoice.Status
	Issued             invoice.IssuedDocument
	Artifacts          invoice.Artifacts
	FailureReason      string
	CancellationReason string
	CancelledAt        *time.Time
	Trip               InvoicedTrip
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// InvoicedTrip summarizes the billed trip for invoice listings.
type InvoicedTrip struct {
	ClientName   string
	DriverName   string
	VehiclePlate string
	StartAt      time.Time
	EndAt        time.Time
}

const invoiceViewSelect = `
	SELECT
		i.id, i.trip_id, i.team_id,
		i.subtotal, i.tax, i.total, i.status,
		i.external_id, i.number, i.folio, i.fiscal_uuid, i.remote_pdf_url, i.remote_xml_url,
		i.pdf_url, i.xml_url,
		i.failure_reason, i.cancellation_reason, i.cancelled_at,
		c.name, d.name, v.plate, t.start_at, t.end_at,
		i.created_at, i.updated_at
	FROM invoices i
	JOIN trips t ON t.id = i.trip_id
	JOIN clients c ON c.id = t.client_id
	JOIN drivers d ON d.id = t.driver_id
	JOIN vehicles v ON v.id = t.vehicle_id`

func scanInvoiceView(rows *sql.Rows) (InvoiceView, error) {
	var (
		view                 InvoiceView
		id, tripID, teamID   uuid.UUID
		subtotal, tax, total decimal.Decimal
		status               string
	)
	err := rows.Scan(
		&id, &tripID, &teamID,
		&subtotal, &tax, &total, &status,
		&view.Issued.ExternalID, &view.Issued.Number, &view.Issued.Folio, &view.Issued.FiscalUUID,
		&view.Issued.PDFURL, &view.Issued.XMLURL,
		&view.Artifacts.PDFURL, &view.Artifacts.XMLURL,
		&view.FailureReason, &view.CancellationReason, &view.CancelledAt,
		&view.Trip.ClientName, &view.Trip.DriverName, &view.Trip.VehiclePlate, &view.Trip.StartAt, &view.Trip.EndAt,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return InvoiceView{}, err
	}

	if view.ID, err = kernel.UUIDFromRaw(id); err != nil {
		return InvoiceView{}, err
	}
	if view.TripID, err = kernel.UUIDFromRaw(tripID); err != nil {
		return InvoiceView{}, err
	}
	if view.TeamID, err = kernel.UUIDFromRaw(teamID); err != nil {
		return InvoiceView{}, err
	}
	if view.Subtotal, err = kernel.NewMoney(subtotal); err != nil {
		return InvoiceView{}, err
	}
	if view.Tax, err = kernel.NewMoney(tax); err != nil {
		return InvoiceView{}, err
	}
	if view.Total, err = kernel.NewMoney(total); err != nil {
		return InvoiceView{}, err
	}
	if view.Status, err = invoice.ParseStatus(status); err != nil {
		return InvoiceView{}, err
	}

	if view.CancelledAt != nil {
		at := view.CancelledAt.UTC()
		view.CancelledAt = &at
	}
	view.Trip.StartAt = view.Trip.StartAt.UTC()
	view.Trip.EndAt = view.Trip.EndAt.UTC()
	view.CreatedAt = view.CreatedAt.UTC()
	view.UpdatedAt = view.UpdatedAt.UTC()
	return view, nil
}
