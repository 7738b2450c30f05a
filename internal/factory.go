package internal

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
)

// ControllerFactory opens per-request resolution scopes.
type ControllerFactory struct {
	metrics *Metrics
}

func NewControllerFactory(m *Metrics) *ControllerFactory {
	return &ControllerFactory{metrics: m}
}

// NewScope opens a scope. The caller must Close it when the request ends,
// on every exit path.
func (f *ControllerFactory) NewScope() *Scope {
	f.metrics.scopeOpened()
	return &Scope{
		instances: make(map[int]Controller),
		onClose:   f.metrics.scopeClosed,
	}
}

// Scope owns the controller instances created for one request. Each
// descriptor resolves to at most one instance per scope.
type Scope struct {
	instances map[int]Controller
	onClose   func()
	order     []Controller
	mu        sync.Mutex
	closed    bool
}

// Resolve returns the scope's instance for d, constructing it on first use.
func (s *Scope) Resolve(d ControllerDescriptor) (Controller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrScopeClosed
	}
	if ctrl, ok := s.instances[d.ID]; ok {
		return ctrl, nil
	}
	if d.New == nil {
		return nil, ErrNilConstructor
	}

	ctrl, err := d.New()
	if err != nil {
		return nil, fmt.Errorf("construct: %w", err)
	}
	if ctrl == nil {
		return nil, ErrNilController
	}

	s.instances[d.ID] = ctrl
	s.order = append(s.order, ctrl)
	return ctrl, nil
}

// Len returns the number of resolved instances.
func (s *Scope) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Close releases every resolved instance implementing io.Closer, newest
// first, and joins their errors. Later calls are no-ops.
func (s *Scope) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	order := s.order
	s.order, s.instances = nil, nil
	s.mu.Unlock()

	if s.onClose != nil {
		s.onClose()
	}

	var errs []error
	for _, ctrl := range slices.Backward(order) {
		if c, ok := ctrl.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
