package session

import "errors"

var (
	// ErrNotConfigured is returned when session access is attempted on an
	// application without a session store.
	ErrNotConfigured = errors.New("session: not configured")

	ErrNotFound     = errors.New("session: not found")
	ErrExpired      = errors.New("session: expired")
	ErrInvalidToken = errors.New("session: invalid token")
	ErrTypeMismatch = errors.New("session: type mismatch")
	ErrNilSession   = errors.New("session: nil session")
)
