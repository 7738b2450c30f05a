package dispatch

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/dmitrymomot/dispatch/internal"
	"github.com/dmitrymomot/dispatch/pkg/assets"
	"github.com/dmitrymomot/dispatch/pkg/config"
	"github.com/dmitrymomot/dispatch/pkg/cookie"
	"github.com/dmitrymomot/dispatch/pkg/health"
	"github.com/dmitrymomot/dispatch/pkg/route"
	"github.com/dmitrymomot/dispatch/pkg/session"
)

// Type aliases - public API
type (
	// App hosts one site and its controllers.
	App = internal.App

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Route is the parsed action, mode and id of a request.
	Route = route.Route

	// HandlerFunc is the signature for pipeline handlers and middleware targets.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from the pipeline.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// Controller produces a Response for a request.
	Controller = internal.Controller

	// ControllerFunc adapts a function to Controller.
	ControllerFunc = internal.ControllerFunc

	// ControllerConstructor creates a controller instance for one request.
	ControllerConstructor = internal.ControllerConstructor

	// ControllerOption sets the routing keys of a controller.
	ControllerOption = internal.ControllerOption

	// ControllerDescriptor is the registration metadata of a controller.
	ControllerDescriptor = internal.ControllerDescriptor

	// Response is the output of a controller.
	Response = internal.Response

	// Outcome tells the pipeline whether to keep running controllers.
	Outcome = internal.Outcome

	// Collector accumulates fragments and the page title for a request.
	Collector = internal.Collector

	// Renderer turns a collector into the response body.
	Renderer = internal.Renderer

	// RendererFunc adapts a function to Renderer.
	RendererFunc = internal.RendererFunc

	// Layout wraps collected content into a full document.
	Layout = internal.Layout

	// Page is what a Layout receives.
	Page = internal.Page

	// Diagnostic describes a failed request.
	Diagnostic = internal.Diagnostic

	// Metrics holds the Prometheus collectors of an App.
	Metrics = internal.Metrics

	// ResponseWriter wraps http.ResponseWriter with write hooks.
	ResponseWriter = internal.ResponseWriter

	// HTTPError is an error with a status code and user-facing message.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// ControllerError wraps a controller failure with its name.
	ControllerError = internal.ControllerError

	// SessionOption configures the session manager.
	SessionOption = internal.SessionOption

	// Session represents a user session.
	Session = session.Session

	// SessionStore defines the interface for session persistence.
	SessionStore = session.Store

	// SiteConfig holds the settings of one site.
	SiteConfig = config.Site

	// FileSystem is the asset filesystem static files are served from.
	FileSystem = assets.FileSystem

	// Scalar is the set of types the typed parameter helpers convert to.
	Scalar = internal.Scalar
)

// Controller responses
type (
	// Tpl adds a ready HTML fragment and an optional title.
	Tpl = internal.Tpl

	// Component renders a templ component into a fragment.
	Component = internal.Component

	// Markdown renders sanitized Markdown into a fragment.
	Markdown = internal.Markdown

	// Redirect stops the chain with a redirect.
	Redirect = internal.Redirect

	// NotFound stops the chain with a 404.
	NotFound = internal.NotFound

	// Raw means the controller wrote the response itself.
	Raw = internal.Raw

	// Skip contributes nothing.
	Skip = internal.Skip
)

// Outcomes
const (
	OutcomeContinue  = internal.OutcomeContinue
	OutcomeRedirect  = internal.OutcomeRedirect
	OutcomeNotFound  = internal.OutcomeNotFound
	OutcomeRawOutput = internal.OutcomeRawOutput
)

// MainContent is the slot Tpl fills by default.
const MainContent = internal.MainContent

// RequestIDHeader is the header the error page reads the request ID from.
const RequestIDHeader = internal.RequestIDHeader

// Constructors

// New creates an application with the given options. Controller
// registrations are frozen once New returns. Misconfiguration panics.
//
// Example:
//
//	app := dispatch.New(
//	    dispatch.WithController(dispatch.Func(menu)),
//	    dispatch.WithController(newCart, dispatch.Action("cart")),
//	)
//
//	err := app.Run(":8080", dispatch.Logger(log))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// Run serves several sites, keyed by virtual path, from one HTTP server and
// blocks until shutdown.
//
// Example:
//
//	err := dispatch.Run(
//	    dispatch.Site(shop),
//	    dispatch.Site(blog),
//	    dispatch.Address(":8080"),
//	)
func Run(opts ...RunOption) error {
	return internal.Run(opts...)
}

// Func adapts a plain function to a ControllerConstructor.
func Func(fn func(c Context) (Response, error)) ControllerConstructor {
	return internal.Func(fn)
}

// Controller options

// Action registers the controller for requests with this action key.
// Without it the controller runs on every request.
func Action(action string) ControllerOption {
	return internal.Action(action)
}

// Mode restricts an action controller to one mode.
func Mode(mode string) ControllerOption {
	return internal.Mode(mode)
}

// Name sets the controller name used in logs, metrics and error pages.
func Name(name string) ControllerOption {
	return internal.Name(name)
}

// App options

// WithController registers a controller.
func WithController(ctor ControllerConstructor, opts ...ControllerOption) Option {
	return internal.WithController(ctor, opts...)
}

// WithStaticFiles serves files under the given top-level folders of the
// site root directly from fsys.
//
// Example:
//
//	dispatch.WithStaticFiles(assets.FromFS(public), "static", "img")
func WithStaticFiles(fsys FileSystem, prefixes ...string) Option {
	return internal.WithStaticFiles(fsys, prefixes...)
}

// WithSitePhysicalPath sets the site root on the asset filesystem.
func WithSitePhysicalPath(path string) Option {
	return internal.WithSitePhysicalPath(path)
}

// WithVirtualPath mounts the site under path instead of the web root.
func WithVirtualPath(path string) Option {
	return internal.WithVirtualPath(path)
}

// WithSiteConfig applies site settings loaded by config.Load.
func WithSiteConfig(cfg SiteConfig, fsys FileSystem) Option {
	return internal.WithSiteConfig(cfg, fsys)
}

// WithDebug includes error details on the default diagnostic page.
func WithDebug(debug bool) Option {
	return internal.WithDebug(debug)
}

// WithMiddleware adds middleware around the dispatch pipeline.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithRenderer replaces the layout renderer.
func WithRenderer(r Renderer) Option {
	return internal.WithRenderer(r)
}

// WithLayout sets the page layout.
func WithLayout(l Layout) Option {
	return internal.WithLayout(l)
}

// WithErrorHandler sets a custom error handler.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets the handler for requests no controller matched.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithHealthChecks enables health check endpoints.
//
// Example:
//
//	dispatch.WithHealthChecks(
//	    dispatch.WithReadinessCheck("db", db.Healthcheck(pool)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithMetrics exposes Prometheus metrics at path ("/metrics" when empty).
func WithMetrics(path string) Option {
	return internal.WithMetrics(path)
}

// WithLogger sets the application logger.
func WithLogger(l *slog.Logger) Option {
	return internal.WithLogger(l)
}

// WithShutdownHook registers a cleanup function run after the server stops.
func WithShutdownHook(fn func(context.Context) error) Option {
	return internal.WithShutdownHook(fn)
}

// Health options

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Address sets the HTTP server address.
// Defaults to ":8080".
func Address(addr string) RunOption {
	return internal.Address(addr)
}

// Logger sets the server logger.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the timeout for graceful shutdown.
// Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// ShutdownHook registers a cleanup function to run during shutdown.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// Site adds an App to a multi-site server.
func Site(app *App) RunOption {
	return internal.Site(app)
}

// OnReady is called with the bound address once the listener is open.
func OnReady(fn func(net.Addr)) RunOption {
	return internal.OnReady(fn)
}

// WithContext sets a custom base context for signal handling.
// Cancelling it triggers graceful shutdown.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Session options

// WithSession enables server-side sessions and new-session detection.
//
// Example:
//
//	dispatch.New(
//	    dispatch.WithSession(session.NewRedisStore(client),
//	        dispatch.WithSessionCookieName("__sid"),
//	    ),
//	)
func WithSession(store SessionStore, opts ...SessionOption) Option {
	return internal.WithSession(store, opts...)
}

// WithSessionCookieName sets the session cookie name.
// Defaults to "__sid".
func WithSessionCookieName(name string) SessionOption {
	return internal.WithSessionCookieName(name)
}

// WithSessionMaxAge sets the session max age in seconds.
// Defaults to 30 days.
func WithSessionMaxAge(seconds int) SessionOption {
	return internal.WithSessionMaxAge(seconds)
}

// WithSessionCookies sets the cookie manager used for the session cookie.
func WithSessionCookies(m *cookie.Manager) SessionOption {
	return internal.WithSessionCookies(m)
}

// NewSessionKey is the session key holding the new-session flag.
const NewSessionKey = internal.NewSessionKey

// Session errors for checking return values.
var (
	ErrSessionNotConfigured = session.ErrNotConfigured
	ErrSessionNotFound      = session.ErrNotFound
	ErrSessionExpired       = session.ErrExpired
)

// Cookie errors for checking return values.
var (
	ErrCookieNotFound = cookie.ErrNotFound
	ErrCookieNoSecret = cookie.ErrNoSecret
	ErrCookieBadSig   = cookie.ErrBadSig
)

// Configuration errors.
var (
	ErrStoreFrozen         = internal.ErrStoreFrozen
	ErrNilConstructor      = internal.ErrNilConstructor
	ErrDuplicateController = internal.ErrDuplicateController
	ErrModeWithoutAction   = internal.ErrModeWithoutAction
	ErrInvalidStaticConfig = internal.ErrInvalidStaticConfig
	ErrScopeClosed         = internal.ErrScopeClosed
	ErrNilController       = internal.ErrNilController
	ErrNoSites             = internal.ErrNoSites
	ErrDuplicateSite       = internal.ErrDuplicateSite
)

// Errors

// NewHTTPError creates an HTTPError. An empty message defaults to the
// status text.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// ErrNotFound creates a 404 HTTPError.
func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

// ErrBadRequest creates a 400 HTTPError.
func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

// ErrInternal creates a 500 HTTPError.
func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

// WithTitle sets the error page title.
func WithTitle(title string) HTTPErrorOption {
	return internal.WithTitle(title)
}

// WithDetail adds a detail line.
func WithDetail(detail string) HTTPErrorOption {
	return internal.WithDetail(detail)
}

// WithRequestID attaches a request ID.
func WithRequestID(id string) HTTPErrorOption {
	return internal.WithRequestID(id)
}

// WithError sets the underlying cause.
func WithError(err error) HTTPErrorOption {
	return internal.WithError(err)
}

// AsHTTPError returns the first *HTTPError in err's chain, or nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// AsControllerError returns the first *ControllerError in err's chain, or nil.
func AsControllerError(err error) *ControllerError {
	return internal.AsControllerError(err)
}

// Rendering

// DefaultLayout is a minimal HTML5 document.
var DefaultLayout Layout = internal.DefaultLayout

// NewLayoutRenderer returns a renderer using layout, or DefaultLayout when nil.
func NewLayoutRenderer(layout Layout) Renderer {
	return internal.NewLayoutRenderer(layout)
}

// DefaultErrorHandler renders the diagnostic page inside layout.
func DefaultErrorHandler(layout Layout, debug bool) ErrorHandler {
	return internal.DefaultErrorHandler(layout, debug)
}

// Helpers

// ContextValue returns the value stored under key with Set, or the zero value.
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

// Query converts a query parameter to T.
//
//	page := dispatch.Query[int](c, "page")
func Query[T Scalar](c Context, name string) T {
	return internal.Query[T](c, name)
}

// QueryDefault converts a query parameter to T, or returns def.
func QueryDefault[T Scalar](c Context, name string, def T) T {
	return internal.QueryDefault(c, name, def)
}

// FormValue converts a body form parameter to T.
func FormValue[T Scalar](c Context, name string) T {
	return internal.FormValue[T](c, name)
}

// FormDefault converts a body form parameter to T, or returns def.
func FormDefault[T Scalar](c Context, name string, def T) T {
	return internal.FormDefault(c, name, def)
}

// SessionValue retrieves a typed value from the session.
func SessionValue[T any](sess *Session, key string) (T, error) {
	return session.Value[T](sess, key)
}

// SessionValueOr retrieves a typed value from the session, or returns def.
func SessionValueOr[T any](sess *Session, key string, def T) T {
	return session.ValueOr(sess, key, def)
}
