package internal_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dispatch/internal"
)

func TestCollector(t *testing.T) {
	t.Parallel()

	t.Run("keeps insertion order per slot", func(t *testing.T) {
		t.Parallel()

		col := internal.NewCollector()
		col.Add("a")
		col.AddTo("sidebar", "s1")
		col.Add("b")
		col.AddTo("", "c")
		col.AddTo("sidebar", "s2")

		require.Equal(t, []string{"a", "b", "c"}, col.Main())
		require.Equal(t, []string{"s1", "s2"}, col.Slot("sidebar"))
		require.Equal(t, []string{internal.MainContent, "sidebar"}, col.SlotNames())
		require.Equal(t, "abc", col.Join(internal.MainContent))
		require.Equal(t, 5, col.Len())
	})

	t.Run("title is last write wins", func(t *testing.T) {
		t.Parallel()

		col := internal.NewCollector()
		col.AddTitle("first")
		col.AddTitle("second")
		require.Equal(t, "second", col.Title())
		require.False(t, col.Empty())
	})

	t.Run("copies are returned", func(t *testing.T) {
		t.Parallel()

		col := internal.NewCollector()
		col.Add("a")
		col.Main()[0] = "changed"
		require.Equal(t, []string{"a"}, col.Main())
		require.Nil(t, col.Slot("missing"))
		require.True(t, internal.NewCollector().Empty())
	})
}

func TestTpl_Process(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		tpl       internal.Tpl
		wantMain  []string
		wantTitle string
	}{
		{"empty payload with title", internal.Tpl{Title: "X"}, nil, ""},
		{"payload without title", internal.Tpl{Data: "body"}, []string{"body"}, ""},
		{"payload with title", internal.Tpl{Data: "body", Title: "Page"}, []string{"body"}, "Page"},
		{"nothing", internal.Tpl{}, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			col := internal.NewCollector()
			outcome, err := tt.tpl.Process(nil, col)
			require.NoError(t, err)
			require.Equal(t, internal.OutcomeContinue, outcome)
			require.Equal(t, tt.wantMain, col.Main())
			require.Equal(t, tt.wantTitle, col.Title())
		})
	}

	t.Run("empty payload keeps earlier title", func(t *testing.T) {
		t.Parallel()

		col := internal.NewCollector()
		col.AddTitle("Site")
		_, err := internal.Tpl{Title: "Other"}.Process(nil, col)
		require.NoError(t, err)
		require.Equal(t, "Site", col.Title())
		require.Zero(t, col.Len())
	})

	t.Run("named slot", func(t *testing.T) {
		t.Parallel()

		col := internal.NewCollector()
		_, err := internal.Tpl{Data: "<nav>", Slot: "menu"}.Process(nil, col)
		require.NoError(t, err)
		require.Equal(t, []string{"<nav>"}, col.Slot("menu"))
		require.Empty(t, col.Main())
	})
}
