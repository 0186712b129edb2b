package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrValidation      = errors.New("invalid request")

	// ErrPaymentProvider wraps failures of the payment provider on the critical path.
	ErrPaymentProvider = errors.New("payment provider failure")

	ErrPaymentIntentRequired = errors.New("payment intent id is required")
	ErrPaymentNotSucceeded   = errors.New("payment has not succeeded")
	ErrPaymentMismatch       = errors.New("payment does not belong to this record")
	ErrInsufficientPayment   = errors.New("payment does not cover the required amount")
)

// ValidationError carries a field-level reason. It matches ErrValidation with errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalidField(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func providerError(err error) error {
	return fmt.Errorf("%w: %v", ErrPaymentProvider, err)
}
