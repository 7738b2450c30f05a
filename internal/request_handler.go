package internal

import (
	"log/slog"
	"time"
)

// RequestHandler is the dispatch pipeline: static gate, route matching,
// controller execution and rendering.
type RequestHandler struct {
	gate        *StaticGate
	matcher     *RouteMatcher
	factory     *ControllerFactory
	controllers *ControllersHandler
	renderer    Renderer
	notFound    HandlerFunc
	logger      *slog.Logger
	metrics     *Metrics
}

// RequestHandlerConfig holds the collaborators of a RequestHandler. Gate,
// NotFound, Logger and Metrics are optional.
type RequestHandlerConfig struct {
	Gate     *StaticGate
	Store    *MetaStore
	Renderer Renderer
	NotFound HandlerFunc
	Logger   *slog.Logger
	Metrics  *Metrics
}

func NewRequestHandler(cfg RequestHandlerConfig) *RequestHandler {
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	renderer := cfg.Renderer
	if renderer == nil {
		renderer = NewLayoutRenderer(nil)
	}
	notFound := cfg.NotFound
	if notFound == nil {
		notFound = func(Context) error { return ErrNotFound("") }
	}

	return &RequestHandler{
		gate:        cfg.Gate,
		matcher:     NewRouteMatcher(cfg.Store),
		factory:     NewControllerFactory(cfg.Metrics),
		controllers: NewControllersHandler(log, cfg.Metrics),
		renderer:    renderer,
		notFound:    notFound,
		logger:      log,
		metrics:     cfg.Metrics,
	}
}

// Handle processes one request. Static files bypass the controller
// pipeline entirely. A request whose action matched no action-keyed
// controller is answered as not found even if defaults exist.
func (h *RequestHandler) Handle(c Context) error {
	start := time.Now()

	if h.gate != nil && h.gate.Match(c, c.RequestPath()) {
		h.logger.DebugContext(c, "static file", slog.String("path", c.RequestPath()))
		h.metrics.observeRequest(outcomeStatic, start)
		return h.gate.Serve(c, c.RequestPath())
	}

	startSession(c)

	r := c.Route()
	match := h.matcher.Match(r)
	if match.Empty() || (r.Action != "" && !match.ActionMatched) {
		return h.handleNotFound(c, start)
	}

	scope := h.factory.NewScope()
	defer func() {
		if err := scope.Close(); err != nil {
			h.logger.WarnContext(c, "release controllers", slog.String("error", err.Error()))
		}
	}()

	col := NewCollector()
	outcome, err := h.controllers.Execute(c, scope, match.Descriptors, col)
	if err != nil {
		h.metrics.observeRequest(outcomeError, start)
		return err
	}

	switch outcome {
	case OutcomeNotFound:
		return h.handleNotFound(c, start)
	case OutcomeRedirect:
		h.metrics.observeRequest(outcomeRedirect, start)
		return nil
	case OutcomeRawOutput:
		h.metrics.observeRequest(outcomeRaw, start)
		return nil
	}

	if err := h.renderer.Render(c, col); err != nil {
		h.metrics.observeRequest(outcomeError, start)
		return err
	}
	h.metrics.observeRequest(outcomeRendered, start)
	return nil
}

func (h *RequestHandler) handleNotFound(c Context, start time.Time) error {
	h.logger.InfoContext(c, "no controller matched",
		slog.String("path", c.RequestPath()),
		slog.String("route", c.Route().String()),
	)
	h.metrics.observeRequest(outcomeNotFound, start)
	return h.notFound(c)
}
