package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"fleet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("trip", "7c9e")

		assert.Equal(t, "trip", err.ParamName)
		assert.Equal(t, "7c9e", err.ID)
		assert.Equal(t, "object not found: trip 7c9e", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		err := errs.NewObjectNotFoundErrorWithCause("invoice", 42, errors.New("record not found"))

		assert.Equal(t, "object not found: invoice 42 (cause: record not found)", err.Error())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestValidationErrors(t *testing.T) {
	cause := errors.New("must be after startAt")

	tests := map[string]struct {
		err      error
		message  string
		sentinel error
	}{
		"invalid": {
			err:      errs.NewValueIsInvalidError("teamId"),
			message:  "value is invalid: teamId",
			sentinel: errs.ErrValueIsInvalid,
		},
		"invalid with cause": {
			err:      errs.NewValueIsInvalidErrorWithCause("endAt", cause),
			message:  "value is invalid: endAt (cause: must be after startAt)",
			sentinel: errs.ErrValueIsInvalid,
		},
		"required": {
			err:      errs.NewValueIsRequiredError("driverId"),
			message:  "value is required: driverId",
			sentinel: errs.ErrValueIsRequired,
		},
		"required with cause": {
			err:      errs.NewValueIsRequiredErrorWithCause("name", errors.New("blank")),
			message:  "value is required: name (cause: blank)",
			sentinel: errs.ErrValueIsRequired,
		},
		"out of range": {
			err:      errs.NewValueIsOutOfRangeError("limit", 500, 1, 100),
			message:  "value is invalid: 500 is limit, min value is 1, max value is 100",
			sentinel: errs.ErrValueIsOutOfRange,
		},
		"out of range with cause": {
			err:      errs.NewValueIsOutOfRangeErrorWithCause("weightKg", -1.5, 0, nil, errors.New("negative")),
			message:  "value is invalid: -1.5 is weightKg, min value is 0, max value is <nil> (cause: negative)",
			sentinel: errs.ErrValueIsOutOfRange,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.message, tt.err.Error())
			require.ErrorIs(t, tt.err, tt.sentinel)
		})
	}

	t.Run("newlines are flattened", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("notes", "line one\nline two", 0, 10)
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestConflictError(t *testing.T) {
	t.Run("NewConflictError", func(t *testing.T) {
		err := errs.NewConflictError("driver", "d-1")

		assert.Equal(t, "driver", err.ParamName)
		assert.Equal(t, "d-1", err.ID)
		assert.Equal(t, "conflict: driver d-1", err.Error())
		assert.Equal(t, errs.ErrConflict, err.Unwrap())
	})

	t.Run("NewConflictErrorWithCause", func(t *testing.T) {
		err := errs.NewConflictErrorWithCause("invoice", "t-1", errors.New("duplicate key"))

		assert.Equal(t, "conflict: invoice t-1 (cause: duplicate key)", err.Error())
	})
}

func TestStateIsInvalidError(t *testing.T) {
	err := errs.NewStateIsInvalidError("invoice", "Stamped", "Pending")

	assert.Equal(t, "state is invalid: invoice cannot move from Stamped to Pending", err.Error())
	assert.Equal(t, errs.ErrStateIsInvalid, err.Unwrap())
}

func TestExternalServiceError(t *testing.T) {
	t.Run("unwraps to sentinel and cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := errs.NewExternalServiceError("facturapi", "create document", cause)

		assert.Equal(t, "external service error: facturapi create document (cause: connection reset)", err.Error())
		require.ErrorIs(t, err, errs.ErrExternalService)
		require.ErrorIs(t, err, cause)
	})

	t.Run("without cause", func(t *testing.T) {
		err := errs.NewExternalServiceError("storage", "put", nil)

		assert.Equal(t, "external service error: storage put", err.Error())
		require.ErrorIs(t, err, errs.ErrExternalService)
	})
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrConflict)
		require.Error(t, errs.ErrStateIsInvalid)
		require.Error(t, errs.ErrExternalService)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "conflict", errs.ErrConflict.Error())
		assert.Equal(t, "state is invalid", errs.ErrStateIsInvalid.Error())
		assert.Equal(t, "external service error", errs.ErrExternalService.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		objectNotFoundErr := errs.NewObjectNotFoundError("userId", "123")
		require.ErrorIs(t, objectNotFoundErr, errs.ErrObjectNotFound)

		valueInvalidErr := errs.NewValueIsInvalidError("email")
		require.ErrorIs(t, valueInvalidErr, errs.ErrValueIsInvalid)

		valueOutOfRangeErr := errs.NewValueIsOutOfRangeError("age", 150, 0, 120)
		require.ErrorIs(t, valueOutOfRangeErr, errs.ErrValueIsOutOfRange)

		valueRequiredErr := errs.NewValueIsRequiredError("username")
		require.ErrorIs(t, valueRequiredErr, errs.ErrValueIsRequired)

		conflictErr := fmt.Errorf("create trip: %w", errs.NewConflictError("vehicle", "v-1"))
		require.ErrorIs(t, conflictErr, errs.ErrConflict)
	})
}
