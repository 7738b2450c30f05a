package internal

import (
	"fmt"
	"slices"
	"sync"
)

// MetaStore is the registry of controller descriptors. It is written during
// startup and frozen before the first request; reads after Freeze take no lock.
type MetaStore struct {
	byAction map[string][]ControllerDescriptor
	defaults []ControllerDescriptor
	names    map[string]struct{}
	mu       sync.Mutex
	nextID   int
	frozen   bool
}

func NewMetaStore() *MetaStore {
	return &MetaStore{
		byAction: make(map[string][]ControllerDescriptor),
		names:    make(map[string]struct{}),
	}
}

// Register adds d and assigns its ID. Descriptors keep registration order
// within their action and within the defaults list. Unnamed descriptors get
// a generated name.
func (s *MetaStore) Register(d ControllerDescriptor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return ErrStoreFrozen
	}
	if d.New == nil {
		return ErrNilConstructor
	}
	d.Default = d.Action == ""
	if d.Default && d.Mode != "" {
		return fmt.Errorf("%w: mode %q", ErrModeWithoutAction, d.Mode)
	}

	s.nextID++
	d.ID = s.nextID
	if d.Name == "" {
		d.Name = generatedName(d)
	}
	if _, dup := s.names[d.Name]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateController, d.Name)
	}
	s.names[d.Name] = struct{}{}

	if d.Default {
		s.defaults = append(s.defaults, d)
	} else {
		s.byAction[d.Action] = append(s.byAction[d.Action], d)
	}
	return nil
}

// Freeze stops further registration. It is idempotent.
func (s *MetaStore) Freeze() {
	s.mu.Lock()
	s.frozen = true
	s.mu.Unlock()
}

// Lookup returns the descriptors keyed by action, in registration order.
// Unknown actions yield an empty slice.
func (s *MetaStore) Lookup(action string) []ControllerDescriptor {
	return slices.Clone(s.byAction[action])
}

// Defaults returns the descriptors without an action key, in registration order.
func (s *MetaStore) Defaults() []ControllerDescriptor {
	return slices.Clone(s.defaults)
}

// Len returns the number of registered descriptors.
func (s *MetaStore) Len() int {
	n := len(s.defaults)
	for _, ds := range s.byAction {
		n += len(ds)
	}
	return n
}

func generatedName(d ControllerDescriptor) string {
	switch {
	case d.Default:
		return fmt.Sprintf("default#%d", d.ID)
	case d.Mode != "":
		return fmt.Sprintf("%s/%s#%d", d.Action, d.Mode, d.ID)
	default:
		return fmt.Sprintf("%s#%d", d.Action, d.ID)
	}
}
