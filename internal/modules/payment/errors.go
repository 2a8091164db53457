package payment

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrAlreadyPaid     = errors.New("booking already paid")
	ErrNotSucceeded    = errors.New("payment intent has not succeeded")
	ErrUnknownIntent   = errors.New("unknown payment intent")
	ErrProviderFailure = errors.New("payment provider failure")
)
