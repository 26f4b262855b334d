// Package triprepo maps the Trip aggregate and its cargo onto the trips and
// cargo_items tables.
package triprepo

import (
	"time"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TripDTO is a row of trips. Timestamps come from the aggregate, never from gorm.
type TripDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TeamID    uuid.UUID       `gorm:"type:uuid;not null"`
	ClientID  uuid.UUID       `gorm:"type:uuid;not null"`
	DriverID  uuid.UUID       `gorm:"type:uuid;not null"`
	VehicleID uuid.UUID       `gorm:"type:uuid;not null"`
	RouteID   uuid.UUID       `gorm:"type:uuid;not null"`
	Price     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	StartAt   time.Time       `gorm:"not null"`
	EndAt     time.Time       `gorm:"not null"`
	Notes     string          `gorm:"type:text;not null"`
	Status    string          `gorm:"type:varchar(32);not null"`
	CreatedAt time.Time       `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime:false"`
}

func (TripDTO) TableName() string {
	return "trips"
}

// CargoItemDTO is a row of cargo_items. Position keeps the order the client sent.
type CargoItemDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TripID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Position int       `gorm:"not null"`
	Name     string    `gorm:"type:varchar(255);not null"`
	WeightKg float64   `gorm:"type:numeric(12,3);not null"`
	ImageURL string    `gorm:"type:text;not null"`
	Notes    string    `gorm:"type:text;not null"`
}

func (CargoItemDTO) TableName() string {
	return "cargo_items"
}

func fromDomain(t *trip.Trip) TripDTO {
	a := t.Assignment()
	return TripDTO{
		ID:        t.ID().Bytes(),
		TeamID:    a.Team.Bytes(),
		ClientID:  a.Client.Bytes(),
		DriverID:  a.Driver.Bytes(),
		VehicleID: a.Vehicle.Bytes(),
		RouteID:   a.Route.Bytes(),
		Price:     t.Price().Decimal(),
		StartAt:   t.Schedule().StartAt,
		EndAt:     t.Schedule().EndAt,
		Notes:     t.Notes(),
		Status:    t.Status().String(),
		CreatedAt: t.CreatedAt(),
		UpdatedAt: t.UpdatedAt(),
	}
}

func cargoFromDomain(t *trip.Trip) []CargoItemDTO {
	tripID := t.ID().Bytes()
	items := t.Cargo()
	dtos := make([]CargoItemDTO, 0, len(items))
	for i, c := range items {
		dtos = append(dtos, CargoItemDTO{
			ID:       c.ID().Bytes(),
			TripID:   tripID,
			Position: i,
			Name:     c.Name(),
			WeightKg: c.WeightKg(),
			ImageURL: c.ImageURL(),
			Notes:    c.Notes(),
		})
	}
	return dtos
}

func toDomain(dto TripDTO, cargoDTOs []CargoItemDTO) (*trip.Trip, error) {
	ids := make([]kernel.UUID, 0, 6)
	for _, raw := range []uuid.UUID{dto.ID, dto.TeamID, dto.ClientID, dto.DriverID, dto.VehicleID, dto.RouteID} {
		id, err := kernel.UUIDFromRaw(raw)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}

	status, err := trip.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	cargo := make([]*trip.CargoItem, 0, len(cargoDTOs))
	for _, c := range cargoDTOs {
		itemID, idErr := kernel.UUIDFromRaw(c.ID)
		if idErr != nil {
			return nil, idErr
		}
		item, itemErr := trip.RestoreCargoItem(itemID, c.Name, c.WeightKg, c.ImageURL, c.Notes)
		if itemErr != nil {
			return nil, itemErr
		}
		cargo = append(cargo, item)
	}

	return trip.RestoreTrip(
		ids[0],
		trip.Assignment{Team: ids[1], Client: ids[2], Driver: ids[3], Vehicle: ids[4], Route: ids[5]},
		trip.Schedule{StartAt: dto.StartAt.UTC(), EndAt: dto.EndAt.UTC()},
		price,
		dto.Notes,
		cargo,
		status,
		dto.CreatedAt.UTC(),
		dto.UpdatedAt.UTC(),
	)
}
