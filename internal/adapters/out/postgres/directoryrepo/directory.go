// Package directoryrepo reads the team-owned master data (clients, drivers,
// vehicles, routes, fiscal settings, memberships). It never writes.
package directoryrepo

import (
	"context"
	"errors"

	"fleet/internal/core/domain/model/invoice"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormDirectory struct {
	db *gorm.DB
}

func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{db: db}
}

// CheckAssignment verifies that every referenced entity exists inside a.Team.
func (d *GormDirectory) CheckAssignment(ctx context.Context, a trip.Assignment) error {
	refs := []struct {
		table string
		param string
		id    kernel.UUID
	}{
		{"clients", "client", a.Client},
		{"drivers", "driver", a.Driver},
		{"vehicles", "vehicle", a.Vehicle},
		{"routes", "route", a.Route},
	}

	for _, ref := range refs {
		var count int64
		err := d.db.WithContext(ctx).Table(ref.table).
			Where("id = ? AND team_id = ?", ref.id.Bytes(), a.Team.Bytes()).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError(ref.param, ref.id.String())
		}
	}
	return nil
}

func (d *GormDirectory) FiscalProfile(ctx context.Context, teamID kernel.UUID) (invoice.FiscalProfile, error) {
	var row struct {
		LegalName                 string
		TaxID                     string
		DefaultProductKey         string
		DefaultProductDescription string
		CfdiUse                   string
		PaymentForm               string
		PaymentMethod             string
	}
	err := d.db.WithContext(ctx).Table("team_fiscal_profiles").
		Where("team_id = ?", teamID.Bytes()).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invoice.FiscalProfile{}, errs.NewObjectNotFoundError("team fiscal profile", teamID.String())
		}
		return invoice.FiscalProfile{}, err
	}

	return invoice.FiscalProfile{
		LegalName:                 row.LegalName,
		TaxID:                     row.TaxID,
		DefaultProductKey:         row.DefaultProductKey,
		DefaultProductDescription: row.DefaultProductDescription,
		CFDIUse:                   row.CfdiUse,
		PaymentForm:               row.PaymentForm,
		PaymentMethod:             row.PaymentMethod,
	}, nil
}

func (d *GormDirectory) BillingInfo(ctx context.Context, clientID kernel.UUID) (invoice.BillingInfo, error) {
	var row struct {
		Name         string
		LegalName    string
		Email        string
		TaxID        string
		TaxSystem    string
		Zip          *string
		Street       *string
		Exterior     *string
		Interior     *string
		Neighborhood *string
		City         *string
		State        *string
		Country      *string
	}
	result := d.db.WithContext(ctx).Raw(`
		SELECT
			c.name, c.legal_name, c.email, c.tax_id, c.tax_system,
			a.zip, a.street, a.exterior, a.interior, a.neighborhood, a.city, a.state, a.country
		FROM clients c
		LEFT JOIN addresses a ON a.id = c.address_id
		WHERE c.id = ?
	`, clientID.Bytes()).Scan(&row)
	if result.Error != nil {
		return invoice.BillingInfo{}, result.Error
	}
	if result.RowsAffected == 0 {
		return invoice.BillingInfo{}, errs.NewObjectNotFoundError("client", clientID.String())
	}

	legalName := row.LegalName
	if legalName == "" {
		legalName = row.Name
	}
	return invoice.BillingInfo{
		LegalName: legalName,
		Email:     row.Email,
		TaxID:     row.TaxID,
		TaxSystem: row.TaxSystem,
		Address: invoice.Address{
			Zip:          deref(row.Zip),
			Street:       deref(row.Street),
			Exterior:     deref(row.Exterior),
			Interior:     deref(row.Interior),
			Neighborhood: deref(row.Neighborhood),
			City:         deref(row.City),
			State:        deref(row.State),
			Country:      deref(row.Country),
		},
	}, nil
}

func (d *GormDirectory) TripParties(ctx context.Context, a trip.Assignment) (invoice.TripParties, error) {
	var row struct {
		DriverName   string
		VehiclePlate string
		VehicleBrand string
		VehicleModel string
		RouteName    string
	}
	result := d.db.WithContext(ctx).Raw(`
		SELECT
			d.name  AS driver_name,
			v.plate AS vehicle_plate,
			v.brand AS vehicle_brand,
			v.model AS vehicle_model,
			r.name  AS route_name
		FROM drivers d, vehicles v, routes r
		WHERE d.id = ? AND v.id = ? AND r.id = ?
	`, a.Driver.Bytes(), a.Vehicle.Bytes(), a.Route.Bytes()).Scan(&row)
	if result.Error != nil {
		return invoice.TripParties{}, result.Error
	}
	if result.RowsAffected == 0 {
		return invoice.TripParties{}, errs.NewObjectNotFoundError("trip parties", a.Driver.String())
	}

	return invoice.TripParties{
		DriverName:   row.DriverName,
		VehiclePlate: row.VehiclePlate,
		VehicleBrand: row.VehicleBrand,
		VehicleModel: row.VehicleModel,
		RouteName:    row.RouteName,
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
