package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// trip or participant does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. destination too short, malformed email).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrInvalidTripWindow is returned by service functions when the trip date
// range is semantically invalid: starts_at in the past, or ends_at before
// starts_at. Handlers should map this to HTTP 422 with its own error code
// so clients can distinguish it from field-level validation.
var ErrInvalidTripWindow = errors.New("invalid trip window")
