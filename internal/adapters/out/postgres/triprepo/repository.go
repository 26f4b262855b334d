package triprepo

import (
	"context"
	"errors"
	"time"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTripRepository implements ports.TripRepository using GORM.
type GormTripRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormTripRepository(db *gorm.DB, tracker aggregateTracker) *GormTripRepository {
	return &GormTripRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the trip row followed by its cargo rows.
func (r *GormTripRepository) Add(ctx context.Context, aggregate *trip.Trip) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if cargo := cargoFromDomain(aggregate); len(cargo) > 0 {
		if err := r.db.WithContext(ctx).Create(&cargo).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the mutable columns. A map is used so that clearing the notes is persisted.
func (r *GormTripRepository) Update(ctx context.Context, aggregate *trip.Trip) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&TripDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Updates(map[string]any{
			"notes":      aggregate.Notes(),
			"status":     aggregate.Status().String(),
			"updated_at": aggregate.UpdatedAt(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("trip", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormTripRepository) ReplaceCargo(ctx context.Context, aggregate *trip.Trip) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	if err := db.Where("trip_id = ?", aggregate.ID().Bytes()).Delete(&CargoItemDTO{}).Error; err != nil {
		return err
	}

	if cargo := cargoFromDomain(aggregate); len(cargo) > 0 {
		if err := db.Create(&cargo).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormTripRepository) Get(ctx context.Context, id kernel.UUID) (*trip.Trip, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

func (r *GormTripRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*trip.Trip, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormTripRepository) ListDueToStart(ctx context.Context, now time.Time) ([]*trip.Trip, error) {
	return r.listLocked(ctx, "status = ? AND start_at <= ?", trip.NotStarted.String(), now)
}

func (r *GormTripRepository) ListOverdue(ctx context.Context, now time.Time) ([]*trip.Trip, error) {
	return r.listLocked(ctx, "status = ? AND end_at < ?", trip.InProgress.String(), now)
}

func (r *GormTripRepository) get(ctx context.Context, query *gorm.DB, id kernel.UUID) (*trip.Trip, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TripDTO
	if err := query.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("trip", id.String())
		}
		return nil, err
	}

	cargo, err := r.loadCargo(ctx, []uuid.UUID{dto.ID})
	if err != nil {
		return nil, err
	}

	return toDomain(dto, cargo[dto.ID])
}

// listLocked selects with FOR UPDATE SKIP LOCKED so concurrent reconcilers split the work.
func (r *GormTripRepository) listLocked(ctx context.Context, where string, args ...any) ([]*trip.Trip, error) {
	var dtos []TripDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where(where, args...).
		Order("start_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}
	if len(dtos) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(dtos))
	for _, dto := range dtos {
		ids = append(ids, dto.ID)
	}
	cargo, err := r.loadCargo(ctx, ids)
	if err != nil {
		return nil, err
	}

	trips := make([]*trip.Trip, 0, len(dtos))
	for _, dto := range dtos {
		t, convErr := toDomain(dto, cargo[dto.ID])
		if convErr != nil {
			return nil, convErr
		}
		trips = append(trips, t)
	}
	return trips, nil
}

func (r *GormTripRepository) loadCargo(ctx context.Context, tripIDs []uuid.UUID) (map[uuid.UUID][]CargoItemDTO, error) {
	var rows []CargoItemDTO
	if err := r.db.WithContext(ctx).
		Where("trip_id IN ?", tripIDs).
		Order("trip_id, position").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	byTrip := make(map[uuid.UUID][]CargoItemDTO, len(tripIDs))
	for _, row := range rows {
		byTrip[row.TripID] = append(byTrip[row.TripID], row)
	}
	return byTrip, nil
}
