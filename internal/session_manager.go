package internal

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/dispatch/pkg/cookie"
	"github.com/dmitrymomot/dispatch/pkg/id"
	"github.com/dmitrymomot/dispatch/pkg/session"
)

// NewSessionKey is the sentinel stored in a session the first time a request
// observes it.
const NewSessionKey = "dispatch_is_new_session"

const (
	defaultSessionCookieName = "__sid"
	defaultSessionMaxAge     = 86400 * 30
)

// SessionManager binds a session store to the session cookie.
type SessionManager struct {
	store      session.Store
	cookies    *cookie.Manager
	logger     *slog.Logger
	cookieName string
	maxAge     int
}

// SessionOption configures the SessionManager.
type SessionOption func(*SessionManager)

// NewSessionManager creates a manager over store. Without a cookie manager
// option, an unsigned one with default attributes is used.
func NewSessionManager(store session.Store, opts ...SessionOption) *SessionManager {
	sm := &SessionManager{
		store:      store,
		cookies:    cookie.New(),
		logger:     slog.New(slog.DiscardHandler),
		cookieName: defaultSessionCookieName,
		maxAge:     defaultSessionMaxAge,
	}
	for _, opt := range opts {
		opt(sm)
	}
	return sm
}

func WithSessionCookieName(name string) SessionOption {
	return func(sm *SessionManager) {
		if name != "" {
			sm.cookieName = name
		}
	}
}

// WithSessionMaxAge sets the session lifetime in seconds.
func WithSessionMaxAge(seconds int) SessionOption {
	return func(sm *SessionManager) {
		if seconds > 0 {
			sm.maxAge = seconds
		}
	}
}

// WithSessionCookies sets the cookie manager. A manager with a secret signs
// the session token.
func WithSessionCookies(m *cookie.Manager) SessionOption {
	return func(sm *SessionManager) {
		if m != nil {
			sm.cookies = m
		}
	}
}

func (sm *SessionManager) setLogger(l *slog.Logger) {
	if l != nil {
		sm.logger = l
	}
}

// Store returns the underlying store.
func (sm *SessionManager) Store() session.Store {
	return sm.store
}

// Load returns the session named by the request cookie, or nil when the
// request has none. Stale, unknown or tampered tokens yield nil without error.
func (sm *SessionManager) Load(ctx context.Context, r *http.Request) (*session.Session, error) {
	token, err := sm.readToken(r)
	if err != nil {
		if errors.Is(err, cookie.ErrBadSig) {
			sm.logger.WarnContext(ctx, "session cookie signature mismatch")
		}
		return nil, nil
	}

	sess, err := sm.store.Get(ctx, token)
	switch {
	case err == nil:
		return sess, nil
	case errors.Is(err, session.ErrNotFound),
		errors.Is(err, session.ErrExpired),
		errors.Is(err, session.ErrInvalidToken):
		return nil, nil
	default:
		return nil, err
	}
}

// New builds an unsaved session. It is persisted by Save.
func (sm *SessionManager) New() *session.Session {
	expiresAt := time.Now().Add(time.Duration(sm.maxAge) * time.Second)
	return session.New(id.New(), id.Token(), expiresAt)
}

// Save persists a new or dirty session and clears its flags.
func (sm *SessionManager) Save(ctx context.Context, sess *session.Session) error {
	switch {
	case sess.IsNew():
		if err := sm.store.Create(ctx, sess); err != nil {
			return err
		}
	case sess.IsDirty():
		sess.LastActiveAt = time.Now()
		if err := sm.store.Update(ctx, sess); err != nil {
			return err
		}
	default:
		return nil
	}
	sess.ClearNew()
	sess.ClearDirty()
	return nil
}

// WriteCookie sets the session cookie on w.
func (sm *SessionManager) WriteCookie(w http.ResponseWriter, sess *session.Session) {
	if sm.cookies.Signed() {
		_ = sm.cookies.SetSigned(w, sm.cookieName, sess.Token, sm.maxAge)
		return
	}
	sm.cookies.Set(w, sm.cookieName, sess.Token, sm.maxAge)
}

// Destroy deletes the session from the store and expires the cookie.
func (sm *SessionManager) Destroy(ctx context.Context, w http.ResponseWriter, sess *session.Session) error {
	sm.cookies.Delete(w, sm.cookieName)
	if sess == nil || sess.IsNew() {
		return nil
	}
	return sm.store.Delete(ctx, sess.Token)
}

func (sm *SessionManager) readToken(r *http.Request) (string, error) {
	if sm.cookies.Signed() {
		return sm.cookies.GetSigned(r, sm.cookieName)
	}
	return sm.cookies.Get(r, sm.cookieName)
}
