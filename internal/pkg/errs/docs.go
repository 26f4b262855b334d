// Package errs provides standardized error types for the fleet application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types for the error classes the service exposes:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input
//   - ObjectNotFoundError: unknown or invisible trip, invoice or resource
//   - ConflictError: resource already reserved, invoice already issued
//   - StateIsInvalidError: transition not allowed by an entity state machine
//   - ExternalServiceError: failure of the fiscal service or object storage
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// The HTTP adapter maps sentinels to status codes, so handlers never inspect
// concrete types.
package errs
