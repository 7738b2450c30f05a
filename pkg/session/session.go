package session

import (
	"errors"
	"maps"
	"time"
)

// Session is a visitor session with arbitrary values.
type Session struct {
	CreatedAt    time.Time      `json:"created_at"`
	LastActiveAt time.Time      `json:"last_active_at"`
	ExpiresAt    time.Time      `json:"expires_at"`
	Values       map[string]any `json:"values"`
	ID           string         `json:"id"`
	Token        string         `json:"token"` // cookie value, distinct from ID

	dirty bool
	isNew bool
}

// New creates a session that is both new and dirty.
func New(id, token string, expiresAt time.Time) *Session {
	now := time.Now()
	return &Session{
		ID:           id,
		Token:        token,
		Values:       make(map[string]any),
		CreatedAt:    now,
		LastActiveAt: now,
		ExpiresAt:    expiresAt,
		isNew:        true,
		dirty:        true,
	}
}

// SetValue stores a value and marks the session dirty.
func (s *Session) SetValue(key string, val any) {
	if s.Values == nil {
		s.Values = make(map[string]any)
	}
	s.Values[key] = val
	s.dirty = true
}

func (s *Session) GetValue(key string) (any, bool) {
	val, ok := s.Values[key]
	return val, ok
}

// HasValue reports whether key is present, whatever its value.
func (s *Session) HasValue(key string) bool {
	_, ok := s.Values[key]
	return ok
}

// DeleteValue removes key, marking the session dirty only if it existed.
func (s *Session) DeleteValue(key string) {
	if _, ok := s.Values[key]; ok {
		delete(s.Values, key)
		s.dirty = true
	}
}

func (s *Session) IsDirty() bool { return s.dirty }
func (s *Session) MarkDirty()    { s.dirty = true }
func (s *Session) ClearDirty()   { s.dirty = false }

// IsNew reports whether the session has not been persisted yet.
func (s *Session) IsNew() bool { return s.isNew }
func (s *Session) ClearNew()   { s.isNew = false }

func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Clone returns a copy with its own Values map. Values themselves are not
// deep-copied. Flags are reset on the copy.
func (s *Session) Clone() *Session {
	c := *s
	c.Values = maps.Clone(s.Values)
	if c.Values == nil {
		c.Values = make(map[string]any)
	}
	c.dirty = false
	c.isNew = false
	return &c
}

// Value returns the value under key asserted to T.
func Value[T any](s *Session, key string) (T, error) {
	var zero T
	if s == nil {
		return zero, ErrNotFound
	}

	val, ok := s.GetValue(key)
	if !ok {
		return zero, ErrNotFound
	}

	typed, ok := val.(T)
	if !ok {
		return zero, errors.Join(ErrTypeMismatch, errors.New("key: "+key))
	}
	return typed, nil
}

// ValueOr is Value with a fallback for missing keys and type mismatches.
func ValueOr[T any](s *Session, key string, fallback T) T {
	val, err := Value[T](s, key)
	if err != nil {
		return fallback
	}
	return val
}
