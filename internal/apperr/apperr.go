// Package apperr holds the error taxonomy shared by every domain package.
// Callers match with errors.Is; the HTTP layer maps each class to a status.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrSelfNegotiation    = errors.New("cannot negotiate on your own product")
	ErrNotFound           = errors.New("not found")
	ErrOfferExpired       = errors.New("final offer expired")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrStorage            = errors.New("storage failure")
)

// Validation returns an error matching ErrValidation with a human-readable reason.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Storage tags a store error as ErrStorage while keeping the driver cause in the chain.
func Storage(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

// Gateway tags a payment gateway failure as ErrGatewayUnavailable.
func Gateway(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrGatewayUnavailable, err)
}
