package trip_test

import (
	"fmt"
	"testing"

	"fleet/internal/core/domain/model/trip"
	"fleet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []trip.Status{
	trip.NotStarted,
	trip.InProgress,
	trip.CompletedOnTime,
	trip.CompletedLate,
	trip.Cancelled,
}

func TestStatus_ParseAndString(t *testing.T) {
	for _, s := range allStatuses {
		t.Run(s.String(), func(t *testing.T) {
			parsed, err := trip.ParseStatus(s.String())

			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		})
	}

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := trip.ParseStatus("DELAYED")

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should render Unknown for invalid values", func(t *testing.T) {
		assert.Equal(t, "UNKNOWN", trip.Status(42).String())
		assert.Error(t, trip.Unknown.Validate())
	})
}

func TestStatus_TransitionTable(t *testing.T) {
	allowed := map[trip.Status][]trip.Status{
		trip.NotStarted:      allStatuses,
		trip.InProgress:      allStatuses,
		trip.CompletedOnTime: {trip.CompletedOnTime, trip.CompletedLate},
		trip.CompletedLate:   {trip.CompletedLate, trip.CompletedOnTime},
		trip.Cancelled:       {trip.Cancelled},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := contains(allowed[from], to)
			t.Run(fmt.Sprintf("%s to %s", from, to), func(t *testing.T) {
				got, err := from.TransitionTo(to)
				if want {
					require.NoError(t, err)
					assert.Equal(t, to, got)
					return
				}
				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrStateIsInvalid)
				assert.False(t, from.CanTransitionTo(to))
			})
		}
	}

	t.Run("should reject Unknown target", func(t *testing.T) {
		_, err := trip.NotStarted.TransitionTo(trip.Unknown)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, trip.NotStarted.IsTerminal())
	assert.False(t, trip.InProgress.IsTerminal())
	assert.True(t, trip.CompletedOnTime.IsTerminal())
	assert.True(t, trip.CompletedLate.IsTerminal())
	assert.True(t, trip.Cancelled.IsTerminal())
	assert.False(t, trip.Cancelled.IsCompleted())
}

func contains(list []trip.Status, s trip.Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
