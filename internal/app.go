package internal

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/dispatch/pkg/assets"
	"github.com/dmitrymomot/dispatch/pkg/health"
	"github.com/dmitrymomot/dispatch/pkg/logger"
)

// Default server timeouts (hardcoded, opinionated).
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// App hosts one site: a virtual path on the web server mapped to a
// physical root on an asset filesystem, with its registered controllers.
// App is immutable after creation.
type App struct {
	router         chi.Router
	site           site
	store          *MetaStore
	handler        *RequestHandler
	sessionManager *SessionManager
	metrics        *Metrics
	renderer       Renderer
	layout         Layout
	errorHandler   ErrorHandler
	notFound       HandlerFunc
	healthConfig   *healthConfig
	logger         *slog.Logger
	static         *staticConfig
	middlewares    []Middleware
	shutdownHooks  []func(context.Context) error
	metricsPath    string
	debug          bool
	errs           []error
}

type site struct {
	physicalPath string
	virtualPath  string
}

type staticConfig struct {
	fsys     assets.FileSystem
	prefixes []string
}

// New creates an application with the given options. Controller
// registrations are frozen once New returns. Misconfiguration panics.
//
// Example:
//
//	app := dispatch.New(
//	    dispatch.WithVirtualPath("/shop"),
//	    dispatch.WithStaticFiles(assets.FromFS(public), "static", "img"),
//	    dispatch.WithController(dispatch.Func(layout)),
//	    dispatch.WithController(newCart, dispatch.Action("cart")),
//	)
func New(opts ...Option) *App {
	a := &App{
		router: chi.NewRouter(),
		store:  NewMetaStore(),
		logger: logger.NewNope(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if err := a.build(); err != nil {
		panic(err)
	}

	a.setupRoutes()
	return a
}

// build validates the collected options and assembles the pipeline.
func (a *App) build() error {
	a.store.Freeze()

	var gate *StaticGate
	if a.static != nil {
		g, err := NewStaticGate(a.static.fsys, a.site.physicalPath, a.static.prefixes...)
		if err != nil {
			a.errs = append(a.errs, err)
		}
		gate = g
	}
	if err := errors.Join(a.errs...); err != nil {
		return err
	}

	if a.sessionManager != nil {
		a.sessionManager.setLogger(a.logger)
	}
	if a.renderer == nil {
		a.renderer = NewLayoutRenderer(a.layout)
	}
	if a.errorHandler == nil {
		a.errorHandler = DefaultErrorHandler(a.layout, a.debug)
	}

	a.handler = NewRequestHandler(RequestHandlerConfig{
		Gate:     gate,
		Store:    a.store,
		Renderer: a.renderer,
		NotFound: a.notFound,
		Logger:   a.logger,
		Metrics:  a.metrics,
	})
	return nil
}

// Router returns the underlying chi.Router.
func (a *App) Router() chi.Router {
	return a.router
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// VirtualPath returns the mount path, "" for the web root.
func (a *App) VirtualPath() string {
	return a.site.virtualPath
}

// Metrics returns the app's metrics, nil unless WithMetrics was given.
func (a *App) Metrics() *Metrics {
	return a.metrics
}

// Run starts a single-site HTTP server and blocks until shutdown.
//
// Example:
//
//	err := app.Run(":8080", dispatch.Logger(log))
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)

	return runServer(runtimeConfig{
		handler:         a.router,
		address:         addr,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		shutdownHooks:   append(slices.Clone(cfg.shutdownHooks), a.shutdownHooks...),
		baseCtx:         cfg.baseCtx,
		onReady:         cfg.onReady,
	})
}

// setupRoutes mounts infrastructure endpoints, then the dispatch pipeline as
// a catch-all under the virtual path.
func (a *App) setupRoutes() {
	if a.healthConfig != nil {
		a.router.Get(a.healthConfig.livenessPath, health.LivenessHandler())
		a.router.Get(a.healthConfig.readinessPath, health.ReadinessHandler(
			a.healthConfig.checks,
			health.WithLogger(a.logger),
		))
	}
	if a.metrics != nil {
		a.router.Handle(a.metricsPath, a.metrics.Handler())
	}

	h := a.wrap(a.chain(a.handler.Handle))
	if vp := a.site.virtualPath; vp != "" {
		a.router.Handle(vp, h)
		a.router.Handle(vp+"/*", h)
		return
	}
	a.router.Handle("/*", h)
}

// chain applies app middleware around h. The first registered middleware
// runs outermost.
func (a *App) chain(h HandlerFunc) HandlerFunc {
	for _, mw := range slices.Backward(a.middlewares) {
		h = mw(h)
	}
	return h
}

// wrap converts a HandlerFunc to http.HandlerFunc. One Context is created
// per request and shared by the whole middleware chain.
func (a *App) wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
		c.saveSession()
	}
}

// handleError hands err to the error handler unless a response was already
// started.
func (a *App) handleError(c Context, err error) {
	if c.Written() {
		a.logger.WarnContext(c, "error after response started", slog.String("error", err.Error()))
		return
	}
	if herr := a.errorHandler(c, err); herr != nil {
		a.logger.ErrorContext(c, "error handler failed", slog.String("error", herr.Error()))
		if !c.Written() {
			http.Error(c.Response(), http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}

// healthConfig holds health check endpoint configuration.
type healthConfig struct {
	checks        health.Checks
	livenessPath  string
	readinessPath string
}

// Default health check paths.
const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// HealthOption configures health check endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck adds a named readiness check.
//
//	dispatch.WithReadinessCheck("db", db.Healthcheck(pool))
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		c.checks[name] = fn
	}
}
