package internal_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dispatch/internal"
	"github.com/dmitrymomot/dispatch/pkg/route"
)

func newMatcher(t *testing.T, descs ...internal.ControllerDescriptor) *internal.RouteMatcher {
	t.Helper()

	s := internal.NewMetaStore()
	for _, d := range descs {
		require.NoError(t, s.Register(d))
	}
	s.Freeze()
	return internal.NewRouteMatcher(s)
}

func TestRouteMatcher_DefaultsThenAction(t *testing.T) {
	t.Parallel()

	m := newMatcher(t,
		internal.NewDescriptor(noop(), internal.Name("D")),
		internal.NewDescriptor(noop(), internal.Action("news"), internal.Name("A")),
	)

	got := m.Match(route.Route{Action: "news"})
	require.Equal(t, []string{"D", "A"}, names(got.Descriptors))
	require.True(t, got.ActionMatched)
}

func TestRouteMatcher_ModeGate(t *testing.T) {
	t.Parallel()

	m := newMatcher(t,
		internal.NewDescriptor(noop(), internal.Name("layout")),
		internal.NewDescriptor(noop(), internal.Action("news"), internal.Name("list")),
		internal.NewDescriptor(noop(), internal.Action("news"), internal.Mode("latest"), internal.Name("latest")),
		internal.NewDescriptor(noop(), internal.Action("news"), internal.Mode("archive"), internal.Name("archive")),
		internal.NewDescriptor(noop(), internal.Name("footer")),
	)

	tests := []struct {
		name    string
		route   route.Route
		want    []string
		matched bool
	}{
		{"no mode", route.Route{Action: "news"}, []string{"layout", "footer", "list"}, true},
		{"matching mode", route.Route{Action: "news", Mode: "latest"}, []string{"layout", "footer", "list", "latest"}, true},
		{"other mode", route.Route{Action: "news", Mode: "archive"}, []string{"layout", "footer", "list", "archive"}, true},
		{"unknown mode", route.Route{Action: "news", Mode: "draft"}, []string{"layout", "footer", "list"}, true},
		{"mode is case sensitive", route.Route{Action: "news", Mode: "Latest"}, []string{"layout", "footer", "list"}, true},
		{"action is case sensitive", route.Route{Action: "News"}, []string{"layout", "footer"}, false},
		{"root", route.Route{}, []string{"layout", "footer"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := m.Match(tt.route)
			require.Equal(t, tt.want, names(got.Descriptors))
			require.Equal(t, tt.matched, got.ActionMatched)
		})
	}
}

func TestRouteMatcher_OnlyModeGatedControllers(t *testing.T) {
	t.Parallel()

	m := newMatcher(t, internal.NewDescriptor(noop(), internal.Action("news"), internal.Mode("edit"), internal.Name("edit")))

	require.True(t, m.Match(route.Route{Action: "news"}).Empty())
	require.False(t, m.Match(route.Route{Action: "news"}).ActionMatched)
	require.Equal(t, []string{"edit"}, names(m.Match(route.Route{Action: "news", Mode: "edit"}).Descriptors))
}

func TestRouteMatcher_NothingRegistered(t *testing.T) {
	t.Parallel()

	m := newMatcher(t)
	require.True(t, m.Match(route.Route{Action: "news", Mode: "latest", ID: "1"}).Empty())
	require.True(t, m.Match(route.Route{}).Empty())
}
