package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"
)

// ReconcileResult counts the trips each scan moved.
type ReconcileResult struct {
	Started       int
	CompletedLate int
}

// ReconcileTripStatusesCommandHandler runs two independent scans:
//
//  1. NotStarted trips with start <= now become InProgress.
//  2. InProgress trips with end < now become CompletedLate and release their resources.
//
// Each scan has its own transaction and locks its candidates with SKIP LOCKED, so a
// trip being changed by a user request is left for the next run. Every candidate is
// re-checked by the aggregate before it is written. A failing scan does not prevent
// the other from running; both errors are joined.
type ReconcileTripStatusesCommandHandler struct {
	uowFactory TripUoWFactory
}

// NewReconcileTripStatusesCommandHandler creates a handler backed by uowFactory.
func NewReconcileTripStatusesCommandHandler(uowFactory TripUoWFactory) ReconcileTripStatusesCommandHandler {
	return ReconcileTripStatusesCommandHandler{uowFactory: uowFactory}
}

func (h ReconcileTripStatusesCommandHandler) Handle(
	ctx context.Context,
	command ReconcileTripStatusesCommand,
) (ReconcileResult, error) {
	if err := command.Validate(); err != nil {
		return ReconcileResult{}, err
	}

	var result ReconcileResult
	started, startErr := h.startDueTrips(ctx, command.Now())
	result.Started = started

	completed, completeErr := h.completeOverdueTrips(ctx, command.Now())
	result.CompletedLate = completed

	return result, errors.Join(startErr, completeErr)
}

func (h ReconcileTripStatusesCommandHandler) startDueTrips(ctx context.Context, now time.Time) (int, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("start due trips: %w", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	trips := uow.TripRepository()
	due, err := trips.ListDueToStart(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("start due trips: %w", err)
	}

	started := 0
	for _, t := range due {
		if _, err = t.Start(now); err != nil {
			continue
		}
		if err = trips.Update(ctx, t); err != nil {
			return 0, fmt.Errorf("start trip %s: %w", t.ID(), err)
		}
		started++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, fmt.Errorf("start due trips: %w", err)
	}
	return started, nil
}

func (h ReconcileTripStatusesCommandHandler) completeOverdueTrips(ctx context.Context, now time.Time) (int, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("complete overdue trips: %w", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	trips := uow.TripRepository()
	overdue, err := trips.ListOverdue(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("complete overdue trips: %w", err)
	}

	released := make([]kernel.UUID, 0, len(overdue))
	for _, t := range overdue {
		var transition trip.Transition
		if transition, err = t.CompleteLate(now); err != nil {
			continue
		}
		if err = trips.Update(ctx, t); err != nil {
			return 0, fmt.Errorf("complete trip %s: %w", t.ID(), err)
		}
		if transition.ReleasesResources {
			released = append(released, t.ID())
		}
	}

	if len(released) > 0 {
		if err = uow.ResourceRegistry().ReleaseByTrips(ctx, released); err != nil {
			return 0, fmt.Errorf("release resources of overdue trips: %w", err)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, fmt.Errorf("complete overdue trips: %w", err)
	}
	return len(released), nil
}
