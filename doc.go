// Package dispatch routes requests of a site to an ordered chain of
// controllers and assembles their output into one page.
//
// A site is a virtual path on the web server mapped to a physical root on an
// asset filesystem. Requests are addressed by an action, a mode and an id,
// taken from the path segments ("/cart/edit/42") or from the act, mode and
// id query keys ("/?act=cart&mode=edit&id=42").
//
// # Quick Start
//
//	app := dispatch.New(
//	    dispatch.WithLogger(log),
//	    dispatch.WithStaticFiles(assets.FromFS(public), "static", "img"),
//	    dispatch.WithController(dispatch.Func(menu)),
//	    dispatch.WithController(newCart, dispatch.Action("cart")),
//	    dispatch.WithController(newCartEdit, dispatch.Action("cart"), dispatch.Mode("edit")),
//	)
//
//	if err := app.Run(":8080"); err != nil {
//	    log.Error("server failed", "error", err)
//	}
//
// # Controllers
//
// Controllers registered without an action run on every request of the site,
// in registration order, before the controllers of the requested action. An
// action controller with a mode runs only when the request mode matches.
// A request whose action has no controllers is answered with 404.
//
// A controller returns a Response:
//
//	func menu(c dispatch.Context) (dispatch.Response, error) {
//	    return dispatch.Tpl{Data: "<nav>...</nav>", Title: "Shop"}, nil
//	}
//
// Tpl, Component and Markdown add fragments to the page. Redirect, NotFound
// and Raw stop the chain. A new controller instance is created for each
// request and closed afterwards if it implements io.Closer.
//
// # Middleware
//
// Middleware wraps the whole pipeline:
//
//	func Logger(log *slog.Logger) dispatch.Middleware {
//	    return func(next dispatch.HandlerFunc) dispatch.HandlerFunc {
//	        return func(c dispatch.Context) error {
//	            start := time.Now()
//	            err := next(c)
//	            log.Info("request",
//	                "route", c.Route().String(),
//	                "duration", time.Since(start),
//	            )
//	            return err
//	        }
//	    }
//	}
//
// # Several Sites
//
// Run serves several Apps from one server, each under its own virtual path:
//
//	err := dispatch.Run(
//	    dispatch.Site(dispatch.New(dispatch.WithVirtualPath("/shop"), ...)),
//	    dispatch.Site(dispatch.New(...)), // web root
//	    dispatch.Address(":8080"),
//	)
//
// # Shutdown
//
// The server handles SIGINT/SIGTERM for graceful shutdown. Register cleanup
// functions with WithShutdownHook:
//
//	app := dispatch.New(
//	    dispatch.WithShutdownHook(db.Shutdown(pool)),
//	)
package dispatch
