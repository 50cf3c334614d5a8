package model

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateSeatNumber is wrapped by validation errors for seat number collisions.
	ErrDuplicateSeatNumber = errors.New("duplicate seat number")
	// ErrUnknownShape is returned when a snapshot holds an object of unknown type.
	ErrUnknownShape = errors.New("unknown shape type")
)

// ValidationError is a recoverable, user-facing rejection of a single field edit.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
