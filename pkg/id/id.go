// Package id generates identifiers for requests and sessions.
package id

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/google/uuid"
)

// New returns a time-ordered UUIDv7 string. It falls back to a random v4
// if the clock-based generator fails.
func New() string {
	v, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v.String()
}

// TokenBytes is the entropy of a Token.
const TokenBytes = 32

// Token returns a URL-safe random secret suitable for cookie values.
func Token() string {
	b := make([]byte, TokenBytes)
	_, _ = rand.Read(b) // never returns an error
	return base64.RawURLEncoding.EncodeToString(b)
}

// Valid reports whether s parses as a UUID.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
