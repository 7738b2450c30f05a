package internal

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
)

// Run serves several sites from one HTTP server and blocks until shutdown.
// Each App answers under its own virtual path; the App mounted at the web
// root, if any, receives everything else.
//
// Example:
//
//	shop := dispatch.New(dispatch.WithVirtualPath("/shop"), ...)
//	blog := dispatch.New(dispatch.WithVirtualPath("/blog"), ...)
//
//	err := dispatch.Run(
//	    dispatch.Site(shop),
//	    dispatch.Site(blog),
//	    dispatch.Address(":8080"),
//	    dispatch.Logger(log),
//	)
func Run(opts ...RunOption) error {
	cfg := buildRunConfig(opts...)

	handler, err := siteRouter(cfg.sites)
	if err != nil {
		return err
	}

	shutdownHooks := slices.Clone(cfg.shutdownHooks)
	for _, app := range cfg.sites {
		shutdownHooks = append(shutdownHooks, app.shutdownHooks...)
	}

	return runServer(runtimeConfig{
		handler:         handler,
		address:         cfg.address,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		shutdownHooks:   shutdownHooks,
		baseCtx:         cfg.baseCtx,
		onReady:         cfg.onReady,
	})
}

// siteRouter routes each request to the App owning its virtual path. Every
// path may be claimed by one App only.
func siteRouter(sites []*App) (http.Handler, error) {
	if len(sites) == 0 {
		return nil, ErrNoSites
	}

	r := chi.NewRouter()
	seen := make(map[string]bool, len(sites))
	var root *App

	for _, app := range sites {
		vp := app.VirtualPath()
		if seen[vp] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSite, vp)
		}
		seen[vp] = true

		if vp == "" {
			root = app
			continue
		}
		r.Handle(vp, app)
		r.Handle(vp+"/*", app)
	}

	if root != nil {
		r.NotFound(root.ServeHTTP)
	}
	return r, nil
}
