package session

import "context"

// Store persists sessions keyed by their token.
type Store interface {
	// Create persists a new session.
	Create(ctx context.Context, s *Session) error

	// Get returns ErrNotFound for unknown tokens and ErrExpired for
	// sessions past ExpiresAt.
	Get(ctx context.Context, token string) (*Session, error)

	// Update saves an existing session.
	Update(ctx context.Context, s *Session) error

	// Delete removes the session with the given token. Deleting an unknown
	// token is not an error.
	Delete(ctx context.Context, token string) error
}
