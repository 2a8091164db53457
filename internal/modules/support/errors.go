package support

import "errors"

var (
	ErrNotFound  = errors.New("ticket not found")
	ErrForbidden = errors.New("forbidden")
	ErrClosed    = errors.New("ticket is closed")
)
