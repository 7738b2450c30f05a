package internal_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dispatch/internal"
)

func TestQueryHelpers(t *testing.T) {
	t.Parallel()

	c := internal.NewTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/?page=3&ratio=0.5&on=true&bad=x", nil))

	require.Equal(t, 3, internal.Query[int](c, "page"))
	require.Equal(t, int64(3), internal.Query[int64](c, "page"))
	require.InDelta(t, 0.5, internal.Query[float64](c, "ratio"), 0.0001)
	require.True(t, internal.Query[bool](c, "on"))
	require.Equal(t, "x", internal.Query[string](c, "bad"))
	require.Zero(t, internal.Query[int](c, "bad"))
	require.Equal(t, 10, internal.QueryDefault(c, "bad", 10))
	require.Equal(t, 10, internal.QueryDefault(c, "missing", 10))
	require.Equal(t, 3, internal.QueryDefault(c, "page", 10))
	require.Equal(t, "anon", internal.FormDefault(c, "user", "anon"))
	require.Zero(t, internal.FormValue[int](c, "page"))
}

func TestFormHelpers(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/?qty=1", strings.NewReader("qty=4&qty=5&gift=yes"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c := internal.NewTestContext(httptest.NewRecorder(), req)

	require.Equal(t, 5, internal.FormValue[int](c, "qty"))
	require.Equal(t, 1, internal.Query[int](c, "qty"))
	require.False(t, internal.FormDefault(c, "gift", false))
	require.Equal(t, "yes", internal.FormValue[string](c, "gift"))
}

type ctxKey struct{}

func TestContextValue(t *testing.T) {
	t.Parallel()

	c := internal.NewTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	c.Set(ctxKey{}, 42)

	require.Equal(t, 42, internal.ContextValue[int](c, ctxKey{}))
	require.Empty(t, internal.ContextValue[string](c, ctxKey{}))
	require.Equal(t, 42, context.Context(c).Value(ctxKey{}))
}
