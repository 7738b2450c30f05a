// Package internal provides the core types and implementation of the
// dispatcher.
//
// This package is internal and should not be used directly. Import
// "github.com/dmitrymomot/dispatch" instead, which re-exports the public API.
//
// # Core Types
//
//   - App: one site (virtual path, physical root, controllers) plus its HTTP server
//   - Context: per-request access to route, parameters, paths and session
//   - Controller: produces a Response for a request
//   - ControllerDescriptor: registration metadata (action, mode, name)
//   - MetaStore: frozen registry of descriptors, indexed by action
//   - RouteMatcher: selects defaults plus action controllers for a route
//   - StaticGate: short-circuits requests for files under static prefixes
//   - ControllerFactory and Scope: per-request controller instances
//   - ControllersHandler: runs matched controllers into a Collector
//   - RequestHandler: the whole pipeline for one request
//
// # Request Flow
//
// Every request of a site goes through the same steps:
//
//  1. The Context derives the request path relative to the virtual path and
//     parses the route from the path segments or act/mode/id query keys.
//  2. If the path starts with a static prefix and names an existing file,
//     the file is streamed and nothing else runs.
//  3. The matcher selects every default controller, then the controllers
//     registered for the route action whose mode gate is empty or equal to
//     the route mode. An action with no controllers is a 404.
//  4. Controllers run in that order inside one Scope. Their responses are
//     merged into a Collector; Redirect, NotFound and Raw stop the chain.
//  5. The Renderer writes the collected fragments through a Layout.
//
// # Controllers
//
//	app := internal.New(
//	    internal.WithController(internal.Func(menu)),
//	    internal.WithController(newCart, internal.Action("cart")),
//	    internal.WithController(newCartEdit, internal.Action("cart"), internal.Mode("edit")),
//	)
//
// A controller implementing io.Closer is closed when its Scope is released,
// after the request finished or failed.
//
// # Errors
//
// Controller failures are wrapped in *ControllerError and handed to the
// ErrorHandler. The default handler renders a diagnostic page with the
// status of any *HTTPError in the chain, 500 otherwise. Details are shown
// only with WithDebug.
package internal
