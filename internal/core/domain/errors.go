package domain

import "errors"

var (
	ErrUserExists         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrAlreadySubscribed  = errors.New("subscription already active")
	ErrNotSubscribed      = errors.New("no active subscription")
	ErrPersistFailed      = errors.New("could not persist user")
	ErrSessionNotFound    = errors.New("session not found")
	ErrPremiumRequired    = errors.New("premium subscription required")
)
