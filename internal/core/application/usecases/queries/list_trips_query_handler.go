package queries

import (
	"context"
	"errors"
	"strings"

	"fleet/internal/core/application/access"
	"fleet/internal/core/ports"
	"fleet/internal/pkg/errs"

	"gorm.io/gorm"
)

// ListTripsQueryHandler pages through a team's trips with optional status and text filters.
type ListTripsQueryHandler struct {
	db         *gorm.DB
	authorizer ports.Authorizer
}

// NewListTripsQueryHandler creates a handler that reads from db.
func NewListTripsQueryHandler(db *gorm.DB, authorizer ports.Authorizer) ListTripsQueryHandler {
	return ListTripsQueryHandler{db: db, authorizer: authorizer}
}

// Handle returns a validation error when the actor is not a member of the requested team.
// Listed trips carry no cargo; GetTrip returns it.
func (h ListTripsQueryHandler) Handle(ctx context.Context, query ListTripsQuery) (ListTripsResponse, error) {
	if err := query.Validate(); err != nil {
		return ListTripsResponse{}, err
	}

	if err := access.RequireMember(ctx, h.authorizer, query.Actor(), query.TeamID()); err != nil {
		if errors.Is(err, access.ErrNotTeamMember) {
			return ListTripsResponse{}, errs.NewValueIsInvalidErrorWithCause("teamId", err)
		}
		return ListTripsResponse{}, err
	}

	where := []string{"t.team_id = ?"}
	args := []any{query.TeamID().Bytes()}
	if status := query.Status(); status != nil {
		where = append(where, "t.status = ?")
		args = append(args, status.String())
	}
	if search := query.Search(); search != "" {
		pattern := "%" + likeEscaper.Replace(search) + "%"
		where = append(where, "(c.name ILIKE ? OR d.name ILIKE ? OR v.plate ILIKE ?)")
		args = append(args, pattern, pattern, pattern)
	}
	filter := " WHERE " + strings.Join(where, " AND ")

	var total int64
	err := h.db.WithContext(ctx).Raw(`
		SELECT count(*)
		FROM trips t
		JOIN clients c ON c.id = t.client_id
		JOIN drivers d ON d.id = t.driver_id
		JOIN vehicles v ON v.id = t.vehicle_id`+filter, args...).Scan(&total).Error
	if err != nil {
		return ListTripsResponse{}, err
	}

	page := query.Page()
	rows, err := h.db.WithContext(ctx).Raw(tripViewSelect+filter+`
		ORDER BY t.created_at DESC, t.id
		LIMIT ? OFFSET ?
	`, append(args, page.Limit(), page.Offset())...).Rows()
	if err != nil {
		return ListTripsResponse{}, err
	}
	defer rows.Close()

	trips := make([]TripView, 0, page.Limit())
	for rows.Next() {
		view, scanErr := scanTripView(rows)
		if scanErr != nil {
			return ListTripsResponse{}, scanErr
		}
		trips = append(trips, view)
	}

	if err = rows.Err(); err != nil {
		return ListTripsResponse{}, err
	}

	return ListTripsResponse{Trips: trips, PageInfo: newPageInfo(page, total)}, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
