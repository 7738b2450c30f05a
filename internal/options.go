package internal

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/dispatch/pkg/assets"
	"github.com/dmitrymomot/dispatch/pkg/config"
	"github.com/dmitrymomot/dispatch/pkg/health"
	"github.com/dmitrymomot/dispatch/pkg/session"
)

// Option configures the application.
type Option func(*App)

// WithController registers a controller. Controllers without an action run
// on every request of the site, before any action controller.
//
// Example:
//
//	dispatch.New(
//	    dispatch.WithController(newLayout),
//	    dispatch.WithController(newCart, dispatch.Action("cart")),
//	    dispatch.WithController(newCartEdit, dispatch.Action("cart"), dispatch.Mode("edit")),
//	)
func WithController(ctor ControllerConstructor, opts ...ControllerOption) Option {
	return func(a *App) {
		if err := a.store.Register(NewDescriptor(ctor, opts...)); err != nil {
			a.errs = append(a.errs, err)
		}
	}
}

// WithStaticFiles serves files under the given top-level folders of the
// site root directly from fsys, bypassing controllers.
//
// Example:
//
//	//go:embed site
//	var site embed.FS
//
//	dispatch.New(
//	    dispatch.WithSitePhysicalPath("site"),
//	    dispatch.WithStaticFiles(assets.FromFS(site), "static", "img"),
//	)
func WithStaticFiles(fsys assets.FileSystem, prefixes ...string) Option {
	return func(a *App) {
		a.static = &staticConfig{fsys: fsys, prefixes: prefixes}
	}
}

// WithSitePhysicalPath sets the site root on the asset filesystem.
func WithSitePhysicalPath(path string) Option {
	return func(a *App) {
		a.site.physicalPath = normalizePhysicalPath(path)
	}
}

// WithVirtualPath mounts the site under path instead of the web root.
func WithVirtualPath(path string) Option {
	return func(a *App) {
		a.site.virtualPath = normalizeVirtualPath(path)
	}
}

// WithSiteConfig applies loaded site settings. Static prefixes take effect
// only together with a filesystem given to WithStaticFiles or fsys.
//
//	site, err := config.Load(config.WithFile("site.yaml"))
//	dispatch.New(dispatch.WithSiteConfig(site, assets.OS()))
func WithSiteConfig(cfg config.Site, fsys assets.FileSystem) Option {
	return func(a *App) {
		a.site.virtualPath = normalizeVirtualPath(cfg.VirtualPath)
		a.site.physicalPath = normalizePhysicalPath(cfg.PhysicalPath)
		a.debug = cfg.Debug
		if len(cfg.StaticPrefixes) > 0 && fsys != nil {
			a.static = &staticConfig{fsys: fsys, prefixes: cfg.StaticPrefixes}
		}
	}
}

// WithDebug includes error details on the default diagnostic page.
func WithDebug(debug bool) Option {
	return func(a *App) {
		a.debug = debug
	}
}

// WithMiddleware adds middleware around the dispatch pipeline.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithRenderer replaces the layout renderer.
func WithRenderer(r Renderer) Option {
	return func(a *App) {
		a.renderer = r
	}
}

// WithLayout sets the page layout used by the default renderer and the
// default error handler.
func WithLayout(l Layout) Option {
	return func(a *App) {
		a.layout = l
	}
}

// WithErrorHandler sets a custom error handler for handler errors.
// Called when the pipeline returns a non-nil error.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithNotFoundHandler sets the handler for requests no controller matched.
//
// Example:
//
//	dispatch.WithNotFoundHandler(func(c dispatch.Context) error {
//	    return c.Error(http.StatusNotFound, "Nothing here")
//	})
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.notFound = h
	}
}

// WithHealthChecks enables health check endpoints with optional configuration.
// Liveness (/health/live): Always returns OK if process is running.
// Readiness (/health/ready): Runs all configured checks.
//
// Example:
//
//	dispatch.WithHealthChecks(
//	    dispatch.WithReadinessCheck("db", db.Healthcheck(pool)),
//	    dispatch.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
			checks:        make(health.Checks),
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// WithMetrics exposes Prometheus metrics at path ("/metrics" when empty).
func WithMetrics(path string) Option {
	return func(a *App) {
		if path == "" {
			path = defaultMetricPath
		}
		a.metrics = NewMetrics()
		a.metricsPath = path
	}
}

// WithLogger sets the application logger.
//
//	dispatch.WithLogger(logger.New(cfg, middlewares.RequestIDExtractor()))
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithSession enables server-side sessions and new-session detection.
//
// Example:
//
//	dispatch.New(
//	    dispatch.WithSession(session.NewPostgresStore(pool),
//	        dispatch.WithSessionCookieName("__sid"),
//	        dispatch.WithSessionMaxAge(86400*30),
//	    ),
//	)
func WithSession(store session.Store, opts ...SessionOption) Option {
	return func(a *App) {
		a.sessionManager = NewSessionManager(store, opts...)
	}
}

// WithShutdownHook registers a cleanup function run by App.Run after the
// server stops.
//
//	dispatch.WithShutdownHook(db.Shutdown(pool))
func WithShutdownHook(fn func(context.Context) error) Option {
	return func(a *App) {
		if fn != nil {
			a.shutdownHooks = append(a.shutdownHooks, fn)
		}
	}
}
