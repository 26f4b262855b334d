package services

import (
	"fmt"
	"html"
	"strings"
	"time"

	"fleet/internal/core/domain/model/invoice"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/pkg/errs"
)

// FiscalDocumentBuilder assembles invoice.Document values.
//
// Line items:
//   - one item per cargo row, described by the cargo name, with the trip price
//     split evenly; the last item absorbs the rounding remainder so the items
//     always add up to the price
//   - a single item described by the profile's default description when the
//     trip has no cargo
//
// Every item uses the profile's default product key and the IVA TaxRate.
type FiscalDocumentBuilder struct{}

func NewFiscalDocumentBuilder() FiscalDocumentBuilder {
	return FiscalDocumentBuilder{}
}

// Build turns a trip into the document sent to the fiscal service. Without cargo the
// trip is billed as one item; otherwise the price is split across cargo rows and the
// last row takes the rounding remainder.
func (FiscalDocumentBuilder) Build(
	t *trip.Trip,
	profile invoice.FiscalProfile,
	billing invoice.BillingInfo,
	parties invoice.TripParties,
) (invoice.Document, error) {
	if err := t.Validate(); err != nil {
		return invoice.Document{}, err
	}
	if profile.DefaultProductKey == "" {
		return invoice.Document{}, errs.NewValueIsRequiredError("team fiscal profile: default product key")
	}
	if billing.TaxID == "" {
		return invoice.Document{}, errs.NewValueIsRequiredError("client billing: tax id")
	}

	return invoice.Document{
		Customer:      billing,
		Items:         lineItems(t, profile),
		Use:           profile.CFDIUse,
		PaymentForm:   profile.PaymentForm,
		PaymentMethod: profile.PaymentMethod,
		CustomSection: customSection(t, parties),
	}, nil
}

func lineItems(t *trip.Trip, profile invoice.FiscalProfile) []invoice.LineItem {
	cargo := t.Cargo()
	if len(cargo) == 0 {
		return []invoice.LineItem{{
			Quantity:    1,
			Description: profile.DefaultProductDescription,
			ProductKey:  profile.DefaultProductKey,
			Price:       t.Price(),
			TaxRate:     invoice.TaxRate,
		}}
	}

	share := t.Price().Div(len(cargo))
	items := make([]invoice.LineItem, 0, len(cargo))
	allocated := kernel.MustMoney("0")
	for i, c := range cargo {
		price := share
		if i == len(cargo)-1 {
			price = remainder(t.Price(), allocated)
		}
		allocated = allocated.Add(price)
		items = append(items, invoice.LineItem{
			Quantity:    1,
			Description: c.Name(),
			ProductKey:  profile.DefaultProductKey,
			Price:       price,
			TaxRate:     invoice.TaxRate,
		})
	}
	return items
}

// remainder is total minus allocated. Shares come from Div, which truncates, so
// allocated never exceeds total.
func remainder(total, allocated kernel.Money) kernel.Money {
	m, err := kernel.NewMoney(total.Decimal().Sub(allocated.Decimal()))
	if err != nil {
		return kernel.MustMoney("0")
	}
	return m
}

func customSection(t *trip.Trip, p invoice.TripParties) string {
	const dateLayout = "2006-01-02"
	s := t.Schedule()

	var b strings.Builder
	b.WriteString("<h3>Trip details</h3>")
	row(&b, "Driver", p.DriverName)
	row(&b, "Vehicle", fmt.Sprintf("%s - %s %s", p.VehiclePlate, p.VehicleBrand, p.VehicleModel))
	row(&b, "Route", p.RouteName)
	row(&b, "Start date", s.StartAt.In(time.UTC).Format(dateLayout))
	row(&b, "End date", s.EndAt.In(time.UTC).Format(dateLayout))
	if t.Notes() != "" {
		row(&b, "Notes", t.Notes())
	}
	return b.String()
}

func row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "<p><strong>%s:</strong> %s</p>", label, html.EscapeString(strings.TrimSpace(value)))
}
