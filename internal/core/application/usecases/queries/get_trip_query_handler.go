package queries

import (
	"context"
	"errors"

	"fleet/internal/core/application/access"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/ports"
	"fleet/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTripQueryHandler loads one trip with its cargo.
type GetTripQueryHandler struct {
	db         *gorm.DB
	authorizer ports.Authorizer
}

func NewGetTripQueryHandler(db *gorm.DB, authorizer ports.Authorizer) GetTripQueryHandler {
	return GetTripQueryHandler{db: db, authorizer: authorizer}
}

func (h GetTripQueryHandler) Handle(ctx context.Context, query GetTripQuery) (TripView, error) {
	if err := query.Validate(); err != nil {
		return TripView{}, err
	}

	notFound := errs.NewObjectNotFoundError("trip", query.TripID().String())

	rows, err := h.db.WithContext(ctx).Raw(tripViewSelect+`
		WHERE t.id = ?
	`, query.TripID().Bytes()).Rows()
	if err != nil {
		return TripView{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return TripView{}, err
		}
		return TripView{}, notFound
	}
	view, err := scanTripView(rows)
	if err != nil {
		return TripView{}, err
	}

	if err = access.RequireMember(ctx, h.authorizer, query.Actor(), view.TeamID); err != nil {
		if errors.Is(err, access.ErrNotTeamMember) {
			return TripView{}, notFound
		}
		return TripView{}, err
	}

	if view.Cargo, err = h.cargo(ctx, query.TripID()); err != nil {
		return TripView{}, err
	}
	return view, nil
}

func (h GetTripQueryHandler) cargo(ctx context.Context, tripID kernel.UUID) ([]CargoView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, name, weight_kg, image_url, notes
		FROM cargo_items
		WHERE trip_id = ?
		ORDER BY position
	`, tripID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cargo := make([]CargoView, 0)
	for rows.Next() {
		var item CargoView
		var id uuid.UUID
		if err = rows.Scan(&id, &item.Name, &item.WeightKg, &item.ImageURL, &item.Notes); err != nil {
			return nil, err
		}
		if item.ID, err = kernel.UUIDFromRaw(id); err != nil {
			return nil, err
		}
		cargo = append(cargo, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return cargo, nil
}
