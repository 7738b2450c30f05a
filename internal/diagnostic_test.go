package internal_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dispatch/internal"
	"github.com/dmitrymomot/dispatch/pkg/htmx"
)

func TestNewDiagnostic(t *testing.T) {
	t.Parallel()

	c := internal.NewTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/cart/edit", nil))

	t.Run("plain error", func(t *testing.T) {
		t.Parallel()

		d := internal.NewDiagnostic(c, errors.New("boom"), false)
		assert.Equal(t, http.StatusInternalServerError, d.Code)
		assert.Equal(t, "500 Internal Server Error", d.Title)
		assert.Equal(t, "Internal Server Error", d.Message)
		assert.Equal(t, "/cart/edit", d.Route)
	})

	t.Run("controller http error", func(t *testing.T) {
		t.Parallel()

		err := &internal.ControllerError{
			Controller: "cart",
			Err:        internal.ErrBadRequest("bad quantity", internal.WithTitle("Cart"), internal.WithRequestID("r1")),
		}
		d := internal.NewDiagnostic(c, err, true)
		assert.Equal(t, http.StatusBadRequest, d.Code)
		assert.Equal(t, "Cart", d.Title)
		assert.Equal(t, "bad quantity", d.Message)
		assert.Equal(t, "cart", d.Controller)
		assert.Equal(t, "r1", d.RequestID)
	})
}

func TestDiagnosticPage(t *testing.T) {
	t.Parallel()

	render := func(d internal.Diagnostic) string {
		var buf bytes.Buffer
		require.NoError(t, internal.DiagnosticPage(d).Render(context.Background(), &buf))
		return buf.String()
	}

	d := internal.Diagnostic{
		Err:        errors.New(`<script>x</script>`),
		Title:      "500 Internal Server Error",
		Message:    "Internal Server Error",
		Controller: "news",
		Code:       http.StatusInternalServerError,
	}

	out := render(d)
	assert.Contains(t, out, "<h1>500 Internal Server Error</h1>")
	assert.NotContains(t, out, "news")
	assert.NotContains(t, out, "script")

	d.Debug = true
	out = render(d)
	assert.Contains(t, out, "<dd>news</dd>")
	assert.Contains(t, out, "&lt;script&gt;x&lt;/script&gt;")
	assert.NotContains(t, out, "<script>")
}

func TestDefaultErrorHandler(t *testing.T) {
	t.Parallel()

	t.Run("full page with request id", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		rec.Header().Set(internal.RequestIDHeader, "req-7")
		c := internal.NewTestContext(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NoError(t, internal.DefaultErrorHandler(nil, false)(c, internal.NewHTTPError(http.StatusForbidden, "No entry")))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "<title>403 Forbidden</title>")
		assert.Contains(t, rec.Body.String(), "<code>req-7</code>")
	})

	t.Run("htmx partial", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(htmx.HeaderHXRequest, "true")
		c := internal.NewTestContext(rec, req)

		require.NoError(t, internal.DefaultErrorHandler(nil, false)(c, errors.New("x")))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "<html>")
		assert.Contains(t, rec.Body.String(), `<section class="dispatch-error">`)
	})
}
