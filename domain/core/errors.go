package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound    = errors.New("resource not found")
	ErrRunNotFound = fmt.Errorf("%w: run", ErrNotFound)

	// Precondition violations
	ErrInvalidDoorIndex = errors.New("door index outside {1,2,3}")
	ErrMalformedGame    = errors.New("game must hold exactly one car behind three doors")
	ErrIndexCollision   = errors.New("door indices must be distinct")

	// Aggregation errors
	ErrNoTrials = errors.New("trial count must be at least 1")

	// Determinism errors
	ErrSeedMismatch = errors.New("seed mismatch")
)

// Error constructors with context
func NewInvalidDoorError(role string, door int) error {
	return fmt.Errorf("%w: %s door %d", ErrInvalidDoorIndex, role, door)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsPreconditionError(err error) bool {
	return errors.Is(err, ErrInvalidDoorIndex) ||
		errors.Is(err, ErrMalformedGame) ||
		errors.Is(err, ErrIndexCollision) ||
		errors.Is(err, ErrNoTrials)
}

func IsDeterminismError(err error) bool {
	return errors.Is(err, ErrSeedMismatch)
}
