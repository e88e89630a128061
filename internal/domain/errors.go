package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation. Every rejection reason below wraps it, so callers that only
// care about "was this the caller's fault" can test for ErrValidation alone.
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// Rejection reasons. Each one wraps ErrValidation.
var (
	// ErrMalformedInstant means a start or end value could not be parsed as an instant.
	ErrMalformedInstant = fmt.Errorf("%w: malformed date/time", ErrValidation)

	// ErrEndNotAfterStart means the range has zero or negative duration.
	ErrEndNotAfterStart = fmt.Errorf("%w: end date/time must be after start date/time", ErrValidation)

	// ErrNoProfileSelected means an event was submitted without any profile ids.
	ErrNoProfileSelected = fmt.Errorf("%w: at least one profile is required", ErrValidation)

	// ErrEmptyName means a profile name was blank after trimming.
	ErrEmptyName = fmt.Errorf("%w: profile name is required", ErrValidation)

	// ErrUnknownTimezone is only produced when strict timezone checking is enabled.
	ErrUnknownTimezone = fmt.Errorf("%w: unknown timezone", ErrValidation)
)
