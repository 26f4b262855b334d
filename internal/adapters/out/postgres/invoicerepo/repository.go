package invoicerepo

import (
	"context"
	"errors"
	"time"

	"fleet/internal/core/domain/model/invoice"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceRepository implements ports.InvoiceRepository using GORM.
// The database must be opened with TranslateError so that the unique index on
// trip_id surfaces as gorm.ErrDuplicatedKey.
type GormInvoiceRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormInvoiceRepository(db *gorm.DB, tracker aggregateTracker) *GormInvoiceRepository {
	return &GormInvoiceRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormInvoiceRepository) Add(ctx context.Context, aggregate *invoice.Invoice) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("invoice for trip", aggregate.TripID().String(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormInvoiceRepository) Update(ctx context.Context, aggregate *invoice.Invoice) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&InvoiceDTO{}).Where("id = ?", dto.ID).Updates(dto.columns())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("invoice", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormInvoiceRepository) Get(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(r.db.WithContext(ctx), "invoice", id.String(), "id = ?", id.Bytes())
}

func (r *GormInvoiceRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	locked := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.first(locked, "invoice", id.String(), "id = ?", id.Bytes())
}

func (r *GormInvoiceRepository) GetByTrip(ctx context.Context, tripID kernel.UUID) (*invoice.Invoice, error) {
	if err := tripID.Validate(); err != nil {
		return nil, err
	}
	return r.first(r.db.WithContext(ctx), "invoice for trip", tripID.String(), "trip_id = ?", tripID.Bytes())
}

func (r *GormInvoiceRepository) ListStuckPending(ctx context.Context, olderThan time.Time) ([]*invoice.Invoice, error) {
	var dtos []InvoiceDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("status = ? AND updated_at < ?", invoice.Pending.String(), olderThan).
		Order("updated_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	invoices := make([]*invoice.Invoice, 0, len(dtos))
	for _, dto := range dtos {
		inv, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

func (r *GormInvoiceRepository) first(query *gorm.DB, param, id string, where string, args ...any) (*invoice.Invoice, error) {
	var dto InvoiceDTO
	if err := query.Where(where, args...).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(param, id)
		}
		return nil, err
	}
	return toDomain(dto)
}
