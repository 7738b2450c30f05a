package internal

import (
	"log/slog"
	"time"
)

// ControllersHandler runs matched controllers in order and merges their
// responses into a collector.
type ControllersHandler struct {
	logger  *slog.Logger
	metrics *Metrics
}

func NewControllersHandler(logger *slog.Logger, m *Metrics) *ControllersHandler {
	return &ControllersHandler{logger: logger, metrics: m}
}

// Execute resolves, invokes and processes each descriptor in order. A nil
// response contributes nothing. The
// first failure stops the chain and is returned as *ControllerError;
// fragments collected before it are kept. A response with a non-continue
// outcome also stops the chain and its outcome is returned.
func (h *ControllersHandler) Execute(c Context, scope *Scope, descriptors []ControllerDescriptor, col *Collector) (Outcome, error) {
	for _, d := range descriptors {
		outcome, err := h.run(c, scope, d, col)
		if err != nil {
			h.logger.ErrorContext(c, "controller failed",
				slog.String("controller", d.Name),
				slog.String("route", c.Route().String()),
				slog.String("error", err.Error()),
			)
			return OutcomeContinue, &ControllerError{Controller: d.Name, Err: err}
		}
		if outcome != OutcomeContinue {
			h.logger.DebugContext(c, "controller chain stopped",
				slog.String("controller", d.Name),
				slog.String("outcome", outcome.String()),
			)
			return outcome, nil
		}
	}
	return OutcomeContinue, nil
}

func (h *ControllersHandler) run(c Context, scope *Scope, d ControllerDescriptor, col *Collector) (outcome Outcome, err error) {
	start := time.Now()
	defer func() { h.metrics.observeController(d.Name, start, err) }()

	ctrl, err := scope.Resolve(d)
	if err != nil {
		return OutcomeContinue, err
	}

	resp, err := ctrl.Invoke(c)
	if err != nil {
		return OutcomeContinue, err
	}
	if resp == nil {
		return OutcomeContinue, nil
	}

	return resp.Process(c, col)
}
