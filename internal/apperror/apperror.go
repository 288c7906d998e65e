// Package apperror defines the error kinds shared by services and handlers.
// Callers wrap a kind with context and test for it with errors.Is.
package apperror

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers both a missing row and a row owned by someone else.
	ErrNotFound      = errors.New("not found or unauthorized")
	ErrValidation    = errors.New("validation failed")
	ErrUpstreamStore = errors.New("media store failure")
	ErrPersistence   = errors.New("persistence failure")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrConflict      = errors.New("conflict")
)

func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func Conflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

func Persistence(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}

func Upstream(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUpstreamStore, op, err)
}

// Message returns the part of err worth showing to a client.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "Not found or unauthorized"
	case errors.Is(err, ErrPersistence):
		return "Internal server error"
	case errors.Is(err, ErrUpstreamStore):
		return "Media storage is unavailable"
	case errors.Is(err, ErrUnauthorized):
		return "Invalid credentials"
	default:
		return err.Error()
	}
}
