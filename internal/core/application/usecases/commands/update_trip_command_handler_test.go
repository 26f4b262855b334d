package commands_test

import (
	"testing"
	"time"

	"fleet/internal/core/application/usecases/commands"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateTripCommandHandler_Handle(t *testing.T) {
	t.Run("should replace cargo and notes", func(t *testing.T) {
		ctx := t.Context()
		f := newTripCommandFixture()
		stored := restoreTrip(trip.InProgress, testNow.Add(-time.Hour), testNow.Add(time.Hour))
		f.expectLockedTrip(t, stored)
		f.trips.On("ReplaceCargo", ctx, stored).Return(nil).Once()
		f.trips.On("Update", ctx, stored).Return(nil).Once()
		f.uow.On("Commit", ctx).Return(nil).Once()

		notes := "gate 7"
		cmd, err := commands.NewUpdateTripCommand(f.actor, stored.ID(), &notes, []commands.CargoInput{
			{Name: "Steel", WeightKg: 900},
			{Name: "Wood", WeightKg: 300, Notes: "dry"},
		})
		require.NoError(t, err)

		updated, err := commands.NewUpdateTripCommandHandler(f.factory, f.auth, f.clock).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "gate 7", updated.Notes())
		require.Len(t, updated.Cargo(), 2)
		assert.Equal(t, "Wood", updated.Cargo()[1].Name())
		assert.Equal(t, trip.InProgress, updated.Status())
		f.trips.AssertExpectations(t)
	})

	t.Run("should leave cargo alone when absent", func(t *testing.T) {
		ctx := t.Context()
		f := newTripCommandFixture()
		stored := restoreTrip(trip.InProgress, testNow.Add(-time.Hour), testNow.Add(time.Hour))
		f.expectLockedTrip(t, stored)
		f.trips.On("Update", ctx, stored).Return(nil).Once()
		f.uow.On("Commit", ctx).Return(nil).Once()

		notes := "only notes"
		cmd, err := commands.NewUpdateTripCommand(f.actor, stored.ID(), &notes, nil)
		require.NoError(t, err)

		_, err = commands.NewUpdateTripCommandHandler(f.factory, f.auth, f.clock).Handle(ctx, cmd)

		require.NoError(t, err)
		f.trips.AssertNotCalled(t, "ReplaceCargo", mock.Anything, mock.Anything)
	})

	t.Run("should clear cargo with an empty list", func(t *testing.T) {
		cmd, err := commands.NewUpdateTripCommand(newTripCommandFixture().actor, restoreTrip(trip.InProgress,
			testNow, testNow.Add(time.Hour)).ID(), nil, []commands.CargoInput{})
		require.NoError(t, err)

		assert.True(t, cmd.ReplacesCargo())
		assert.Empty(t, cmd.Cargo())
	})

	t.Run("should reject invalid cargo before touching storage", func(t *testing.T) {
		f := newTripCommandFixture()
		_, err := commands.NewUpdateTripCommand(f.actor, restoreTrip(trip.InProgress, testNow, testNow.Add(time.Hour)).ID(),
			nil, []commands.CargoInput{{Name: "Sand", WeightKg: 0}})

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		f.factory.AssertNotCalled(t, "Create")
	})
}
