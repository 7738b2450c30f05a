package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/dispatch/pkg/cache"
)

// CacheStore keeps sessions in a cache.Cache, expiring entries at the
// session's ExpiresAt.
type CacheStore struct {
	cache cache.Cache[*Session]
}

// NewCacheStore wraps any session cache.
func NewCacheStore(c cache.Cache[*Session]) *CacheStore {
	return &CacheStore{cache: c}
}

// NewMemoryStore keeps sessions in process memory. Suitable for a single
// instance and for tests.
func NewMemoryStore(opts ...cache.MemoryOption) *CacheStore {
	return NewCacheStore(cache.NewMemory[*Session](opts...))
}

// NewRedisStore keeps sessions in Redis under "{prefix}:{token}", JSON encoded.
func NewRedisStore(client redis.UniversalClient, prefix string) *CacheStore {
	if prefix == "" {
		prefix = "session"
	}
	return NewCacheStore(cache.NewRedis[*Session](client, nil, cache.WithPrefix(prefix)))
}

func (s *CacheStore) Create(ctx context.Context, sess *Session) error {
	return s.put(ctx, sess)
}

func (s *CacheStore) Update(ctx context.Context, sess *Session) error {
	return s.put(ctx, sess)
}

func (s *CacheStore) Get(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	sess, err := s.cache.Get(ctx, token)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if sess.IsExpired() {
		_ = s.cache.Delete(ctx, token)
		return nil, ErrExpired
	}
	return sess.Clone(), nil
}

func (s *CacheStore) Delete(ctx context.Context, token string) error {
	return s.cache.Delete(ctx, token)
}

// Close releases the underlying cache.
func (s *CacheStore) Close() error {
	return s.cache.Close()
}

func (s *CacheStore) put(ctx context.Context, sess *Session) error {
	if sess == nil {
		return ErrNilSession
	}
	if sess.Token == "" {
		return ErrInvalidToken
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return ErrExpired
	}
	return s.cache.Set(ctx, sess.Token, sess.Clone(), ttl)
}

var _ Store = (*CacheStore)(nil)
