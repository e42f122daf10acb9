package payments

import (
	"errors"
	"net/http"
)

// Relay error taxonomy. Handlers map these onto HTTP statuses; everything
// else in the package wraps them with %w so errors.Is keeps working.
var (
	// ErrInvalidInput: a required field is missing or unusable (400).
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound: unknown tool, customer or resource (404).
	ErrNotFound = errors.New("not found")
	// ErrInvalidState: the identifier resolved but carries no refundable charge (400).
	ErrInvalidState = errors.New("invalid state")
	// ErrUpstream: the payments provider rejected the call (500).
	ErrUpstream = errors.New("payments provider error")
)

// HTTPStatus maps a relay error to its response status.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidState):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
