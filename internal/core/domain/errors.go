package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyInput indicates blank text was submitted for ingestion.
	ErrEmptyInput = fmt.Errorf("%w: text is empty", ErrInvalidInput)

	// ErrInvalidStress indicates a stress reading outside [MinStress, MaxStress].
	ErrInvalidStress = fmt.Errorf("%w: stress must be between %d and %d", ErrInvalidInput, MinStress, MaxStress)

	// ErrNegativeDuration indicates an event was logged with a negative duration.
	ErrNegativeDuration = fmt.Errorf("%w: duration must not be negative", ErrInvalidInput)

	// ErrSessionClosed indicates an attempt to close a session twice.
	ErrSessionClosed = errors.New("session already closed")

	// ErrUnsupportedBackend indicates an unknown storage backend name.
	ErrUnsupportedBackend = errors.New("unsupported storage backend")
)
