package internal

import (
	"context"
	"log/slog"
	"maps"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/dispatch/pkg/htmx"
	"github.com/dmitrymomot/dispatch/pkg/route"
	"github.com/dmitrymomot/dispatch/pkg/session"
)

// Context is the per-request view given to controllers, middleware and
// renderers. It also implements context.Context by delegating to the
// request context.
type Context interface {
	context.Context

	Request() *http.Request
	Response() http.ResponseWriter

	// ResponseWriter returns the wrapping writer that tracks status and size.
	ResponseWriter() *ResponseWriter

	// Route returns the (action, mode, id) triple resolved from path and query.
	Route() route.Route

	// RequestPath returns the URL path relative to the site virtual path,
	// always starting with "/".
	RequestPath() string

	// Query returns a query parameter. Duplicate keys resolve to the last value.
	Query(name string) string

	// QueryParams returns all query parameters, last value wins.
	QueryParams() map[string]string

	// Form returns a body form parameter. Duplicate keys resolve to the last value.
	Form(name string) string

	// FormParams returns all body form parameters, last value wins.
	FormParams() map[string]string

	Header(name string) string
	SetHeader(name, value string)

	// SitePhysicalPath is the site root on the asset filesystem. It never
	// ends with "/".
	SitePhysicalPath() string

	// SiteVirtualPath is the mount path, "" when served at the web root.
	SiteVirtualPath() string

	// SiteURL is scheme://host plus the virtual path. It always ends with "/".
	SiteURL() string

	// ActionModeURL formats the current route as ?act=..&amp;mode=..&amp;id=..
	ActionModeURL() string

	// IsNewSession reports whether this request is the first to observe
	// its session. Always false without a session store.
	IsNewSession() bool

	// Session returns the request session, or session.ErrNotConfigured.
	Session() (*session.Session, error)

	// DestroySession deletes the session and expires its cookie.
	DestroySession() error

	IsHTMX() bool

	// Written reports whether a response has been started.
	Written() bool

	Logger() *slog.Logger

	// Set stores a value on the request context.
	Set(key, value any)
	Get(key any) any

	// Error builds an HTTPError to return from a handler.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError
}

type requestContext struct {
	request  *http.Request
	response *ResponseWriter
	logger   *slog.Logger
	sessions *SessionManager
	session  *session.Session
	query    map[string]string
	form     map[string]string

	route        route.Route
	requestPath  string
	physicalPath string
	virtualPath  string
	siteURL      string

	isNewSession   bool
	sessionStarted bool
}

// newContext derives paths, route and parameters once per request. The
// session is started on first use, so static files never touch the store.
func newContext(w http.ResponseWriter, r *http.Request, a *App) *requestContext {
	rw, ok := w.(*ResponseWriter)
	if !ok {
		rw = NewResponseWriter(w)
	}

	if err := r.ParseForm(); err != nil {
		a.logger.WarnContext(r.Context(), "parse form", slog.String("error", err.Error()))
	}

	c := &requestContext{
		request:      r,
		response:     rw,
		logger:       a.logger,
		sessions:     a.sessionManager,
		physicalPath: strings.TrimSuffix(a.site.physicalPath, "/"),
		virtualPath:  a.site.virtualPath,
		query:        route.Flatten(r.URL.Query()),
		form:         route.Flatten(r.PostForm),
	}
	c.requestPath = relativePath(r.URL.Path, c.virtualPath)
	c.siteURL = siteURL(r, c.virtualPath)
	c.route = route.Resolve(r.URL.Path, c.virtualPath, r.URL.Query())
	return c
}

// startSession loads or creates the session and performs new-session
// detection. Only the first call has an effect.
func (c *requestContext) startSession() {
	if c.sessions == nil || c.sessionStarted {
		return
	}
	c.sessionStarted = true

	sess, err := c.sessions.Load(c, c.request)
	if err != nil {
		c.logger.ErrorContext(c, "load session", slog.String("error", err.Error()))
		return
	}
	if sess == nil {
		sess = c.sessions.New()
		c.sessions.WriteCookie(c.response, sess)
	}
	c.session = sess

	if !sess.HasValue(NewSessionKey) {
		sess.SetValue(NewSessionKey, true)
		c.isNewSession = true
	}

	c.response.OnBeforeWrite(c.saveSession)
}

// saveSession persists pending session changes. It runs before the header
// is written and again when the handler returns without writing.
func (c *requestContext) saveSession() {
	if c.session == nil {
		return
	}
	if err := c.sessions.Save(c, c.session); err != nil {
		c.logger.ErrorContext(c, "save session", slog.String("error", err.Error()))
	}
}

func (c *requestContext) Deadline() (deadline time.Time, ok bool) {
	return c.request.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *requestContext) Err() error {
	return c.request.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Request() *http.Request          { return c.request }
func (c *requestContext) Response() http.ResponseWriter   { return c.response }
func (c *requestContext) ResponseWriter() *ResponseWriter { return c.response }
func (c *requestContext) Route() route.Route              { return c.route }
func (c *requestContext) RequestPath() string             { return c.requestPath }
func (c *requestContext) Query(name string) string        { return c.query[name] }
func (c *requestContext) QueryParams() map[string]string  { return maps.Clone(c.query) }
func (c *requestContext) Form(name string) string         { return c.form[name] }
func (c *requestContext) FormParams() map[string]string   { return maps.Clone(c.form) }
func (c *requestContext) Header(name string) string       { return c.request.Header.Get(name) }
func (c *requestContext) SetHeader(name, value string)    { c.response.Header().Set(name, value) }
func (c *requestContext) SitePhysicalPath() string        { return c.physicalPath }
func (c *requestContext) SiteVirtualPath() string         { return c.virtualPath }
func (c *requestContext) SiteURL() string                 { return c.siteURL }
func (c *requestContext) ActionModeURL() string           { return c.route.ActionModeURL() }
func (c *requestContext) IsHTMX() bool                    { return htmx.IsHTMX(c.request) }
func (c *requestContext) Written() bool                   { return c.response.Written() }
func (c *requestContext) Logger() *slog.Logger            { return c.logger }
func (c *requestContext) Get(key any) any                 { return c.request.Context().Value(key) }

func (c *requestContext) IsNewSession() bool {
	c.startSession()
	return c.isNewSession
}

func (c *requestContext) Session() (*session.Session, error) {
	if c.sessions == nil {
		return nil, session.ErrNotConfigured
	}
	c.startSession()
	if c.session == nil {
		return nil, session.ErrNotFound
	}
	return c.session, nil
}

func (c *requestContext) DestroySession() error {
	if c.sessions == nil {
		return session.ErrNotConfigured
	}
	c.startSession()
	sess := c.session
	c.session = nil
	return c.sessions.Destroy(c, c.response, sess)
}

func (c *requestContext) Set(key, value any) {
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

// relativePath strips the virtual path prefix at a segment boundary.
func relativePath(p, virtual string) string {
	if virtual != "" {
		if p == virtual {
			return "/"
		}
		if strings.HasPrefix(p, virtual+"/") {
			p = p[len(virtual):]
		}
	}
	if p == "" {
		return "/"
	}
	return p
}

func siteURL(r *http.Request, virtual string) string {
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host + virtual + "/"
}

// normalizeVirtualPath returns "" for the web root, otherwise a path with a
// leading and no trailing slash.
func normalizeVirtualPath(p string) string {
	p = strings.Trim(strings.ReplaceAll(p, `\`, "/"), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}

// startSession begins session tracking for dispatched requests. Contexts
// not created by the App are left alone.
func startSession(c Context) {
	if rc, ok := c.(*requestContext); ok {
		rc.startSession()
	}
}
