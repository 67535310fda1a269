package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound       = errors.New("resource not found")
	ErrRunNotFound    = fmt.Errorf("%w: run", ErrNotFound)
	ErrReportNotFound = fmt.Errorf("%w: report", ErrNotFound)

	// Validation errors
	ErrInvalidObservation = errors.New("invalid observation")
	ErrAngleOutOfRange    = errors.New("angle outside [0, 360)")
	ErrNonFiniteAngle     = errors.New("angle is not a finite number")
	ErrMissingGroupKey    = errors.New("missing group key")
	ErrInsufficientData   = errors.New("insufficient data for analysis")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewObservationError(index int, cause error) error {
	return fmt.Errorf("%w at row %d: %v", ErrInvalidObservation, index, cause)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidObservation) ||
		errors.Is(err, ErrAngleOutOfRange) ||
		errors.Is(err, ErrNonFiniteAngle) ||
		errors.Is(err, ErrMissingGroupKey)
}
