package models

import "errors"

// Engine errors. Handlers map these to HTTP status codes with errors.Is.
var (
	ErrValidation             = errors.New("validation failed")
	ErrCoverageNotFound       = errors.New("no active coverage rule for service")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrOverpaymentRejected    = errors.New("payment exceeds outstanding bill total")
	ErrBillingCodeInvalid     = errors.New("billing code expired, redeemed, or unknown")
	ErrConcurrentModification = errors.New("entity modified concurrently, retry with fresh state")
)
