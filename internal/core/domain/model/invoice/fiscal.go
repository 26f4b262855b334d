package invoice

import (
	"fleet/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// TaxRate is the IVA rate applied to every trip invoice.
var TaxRate = decimal.RequireFromString("0.16")

// DefaultCancellationReason is the SAT motive used when the caller gives none.
const DefaultCancellationReason = "01"

// FiscalProfile is the issuing team's fiscal data, read from the team settings.
type FiscalProfile struct {
	LegalName                 string
	TaxID                     string
	DefaultProductKey         string
	DefaultProductDescription string
	CFDIUse                   string
	PaymentForm               string
	PaymentMethod             string
}

// Address is the customer's fiscal address.
type Address struct {
	Zip          string
	Street       string
	Exterior     string
	Interior     string
	Neighborhood string
	City         string
	State        string
	Country      string
}

// BillingInfo describes the client being invoiced.
type BillingInfo struct {
	LegalName string
	Email     string
	TaxID     string
	TaxSystem string
	Address   Address
}

// TripParties carries the display names printed on the invoice's custom section.
type TripParties struct {
	DriverName   string
	VehiclePlate string
	VehicleBrand string
	VehicleModel string
	RouteName    string
}

// LineItem is a single concept on the fiscal document.
type LineItem struct {
	Quantity    int
	Description string
	ProductKey  string
	Price       kernel.Money
	TaxRate     decimal.Decimal
}

// Document is the request submitted to the fiscal document service.
type Document struct {
	Customer      BillingInfo
	Items         []LineItem
	Use           string
	PaymentForm   string
	PaymentMethod string
	CustomSection string
}

// IssuedDocument is what the fiscal document service returns on success.
type IssuedDocument struct {
	ExternalID string
	Number     string
	Folio      string
	FiscalUUID string
	PDFURL     string
	XMLURL     string
}

// Artifacts are the stored locations of the downloaded rendered and data files.
type Artifacts struct {
	PDFURL string
	XMLURL string
}
