// Package resourcerepo keeps driver and vehicle availability in the drivers and
// vehicles tables. Every change is one conditional UPDATE, so the row lock taken
// by the statement is what serializes competing reservations.
package resourcerepo

import (
	"context"
	"errors"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/resource"
	"fleet/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrResourceUnavailable = errors.New("resource is not available")

type GormResourceRegistry struct {
	db *gorm.DB
}

func NewGormResourceRegistry(db *gorm.DB) *GormResourceRegistry {
	return &GormResourceRegistry{db: db}
}

// Reserve marks an Available resource as held by tripID.
func (r *GormResourceRegistry) Reserve(ctx context.Context, ref resource.Ref, tripID kernel.UUID) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	table, err := tableOf(ref.Kind())
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Table(table).
		Where("id = ? AND status = ?", ref.ID().Bytes(), resource.AvailableStatus(ref.Kind())).
		Updates(map[string]any{
			"status":          resource.CommittedStatus(ref.Kind()),
			"current_trip_id": tripID.Bytes(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err = r.db.WithContext(ctx).Table(table).Where("id = ?", ref.ID().Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError(ref.Kind().String(), ref.ID().String())
	}
	return errs.NewConflictErrorWithCause(ref.Kind().String(), ref.ID().String(), ErrResourceUnavailable)
}

// Release frees the resource only while tripID still holds it.
func (r *GormResourceRegistry) Release(ctx context.Context, ref resource.Ref, tripID kernel.UUID) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	table, err := tableOf(ref.Kind())
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Table(table).
		Where("id = ? AND current_trip_id = ?", ref.ID().Bytes(), tripID.Bytes()).
		Updates(map[string]any{
			"status":          resource.AvailableStatus(ref.Kind()),
			"current_trip_id": nil,
		}).Error
}

func (r *GormResourceRegistry) ReleaseByTrips(ctx context.Context, tripIDs []kernel.UUID) error {
	if len(tripIDs) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(tripIDs))
	for _, id := range tripIDs {
		ids = append(ids, id.Bytes())
	}

	for _, kind := range []resource.Kind{resource.Driver, resource.Vehicle} {
		table, _ := tableOf(kind)
		err := r.db.WithContext(ctx).Table(table).
			Where("current_trip_id IN ?", ids).
			Updates(map[string]any{
				"status":          resource.AvailableStatus(kind),
				"current_trip_id": nil,
			}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func tableOf(k resource.Kind) (string, error) {
	switch k {
	case resource.Driver:
		return "drivers", nil
	case resource.Vehicle:
		return "vehicles", nil
	default:
		return "", errs.NewValueIsInvalidError("resource kind")
	}
}
