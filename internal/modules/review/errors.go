package review

import "errors"

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrNotYourBooking  = errors.New("booking belongs to another customer")
	ErrNotCompleted    = errors.New("booking is not completed")
	ErrAlreadyReviewed = errors.New("booking already reviewed")
	ErrNotFound        = errors.New("review not found")
	ErrForbidden       = errors.New("forbidden")
)
