package catalog

import "errors"

var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("car not found")
	ErrForbidden        = errors.New("forbidden")
	ErrHasActiveBookings = errors.New("car has active bookings")
)
