package internal

import "github.com/dmitrymomot/dispatch/pkg/route"

// Match is the ordered list of controllers selected for a route.
type Match struct {
	Descriptors []ControllerDescriptor
	// ActionMatched reports whether at least one action-keyed descriptor was
	// selected, as opposed to defaults only.
	ActionMatched bool
}

// Empty reports whether nothing should run.
func (m Match) Empty() bool {
	return len(m.Descriptors) == 0
}

// RouteMatcher selects controllers for a route from a frozen MetaStore.
type RouteMatcher struct {
	store *MetaStore
}

func NewRouteMatcher(store *MetaStore) *RouteMatcher {
	return &RouteMatcher{store: store}
}

// Match returns all defaults followed by the descriptors registered for
// r.Action whose mode gate is empty or equal to r.Mode. Both groups keep
// registration order. Keys compare exactly and case-sensitively.
func (m *RouteMatcher) Match(r route.Route) Match {
	out := m.store.Defaults()

	if r.Action == "" {
		return Match{Descriptors: out}
	}

	matched := false
	for _, d := range m.store.Lookup(r.Action) {
		if d.Mode != "" && d.Mode != r.Mode {
			continue
		}
		out = append(out, d)
		matched = true
	}

	return Match{Descriptors: out, ActionMatched: matched}
}
