package service

import "errors"

// Failure modes the controllers translate to HTTP statuses.
var (
	ErrNotFound           = errors.New("not found")
	ErrExpired            = errors.New("expired")
	ErrForbidden          = errors.New("forbidden")
	ErrCodeTaken          = errors.New("custom code already in use")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrSignupDisabled     = errors.New("public signup is disabled")
	ErrUsersExist         = errors.New("users already exist, cannot create initial superuser")
	ErrInvalidID          = errors.New("invalid user ID format")
	ErrValidation         = errors.New("validation failed")
)
