package booking

import "errors"

var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("booking not found")
	ErrForbidden    = errors.New("forbidden")
	ErrNotAvailable = errors.New("car not available")
	ErrNotCancellable = errors.New("booking cannot be cancelled")
)
