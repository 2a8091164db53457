package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrUnauthorized       = errors.New("unauthorized")
)
