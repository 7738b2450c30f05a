package middlewares_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dispatch/internal"
	"github.com/dmitrymomot/dispatch/middlewares"
	"github.com/dmitrymomot/dispatch/pkg/id"
	"github.com/dmitrymomot/dispatch/pkg/logger"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates new request ID when not present", func(t *testing.T) {
		t.Parallel()

		var captured string
		rec := serve(httptest.NewRequest(http.MethodGet, "/", nil),
			func(c internal.Context) (internal.Response, error) {
				captured = middlewares.GetRequestID(c)
				return internal.Tpl{Data: "ok"}, nil
			},
			internal.WithMiddleware(middlewares.RequestID()),
		)

		require.Equal(t, http.StatusOK, rec.Code)
		require.True(t, id.Valid(captured))
		require.Equal(t, captured, rec.Header().Get("X-Request-ID"))
	})

	t.Run("uses existing request ID from header", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "existing-request-id-123")

		rec := serve(req, page("ok"), internal.WithMiddleware(middlewares.RequestID()))
		require.Equal(t, "existing-request-id-123", rec.Header().Get("X-Request-ID"))
	})

	t.Run("custom headers are checked in order", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Trace", "second")
		req.Header.Set("X-Correlation", "first")

		rec := serve(req, page("ok"), internal.WithMiddleware(middlewares.RequestID(
			middlewares.WithRequestIDHeaders("X-Correlation", "X-Trace"),
		)))
		require.Equal(t, "first", rec.Header().Get("X-Request-ID"))
	})

	t.Run("custom generator and response header", func(t *testing.T) {
		t.Parallel()

		rec := serve(httptest.NewRequest(http.MethodGet, "/", nil), page("ok"),
			internal.WithMiddleware(middlewares.RequestID(
				middlewares.WithRequestIDGenerator(func() string { return "fixed" }),
				middlewares.WithRequestIDResponseHeader("X-Trace-ID"),
			)),
		)
		require.Equal(t, "fixed", rec.Header().Get("X-Trace-ID"))
		require.Empty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("error page shows request ID", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/?act=missing", nil)
		req.Header.Set("X-Request-ID", "rid-42")

		rec := serve(req, page("ok"), internal.WithMiddleware(middlewares.RequestID()))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "rid-42")
	})
}

func TestGetRequestID(t *testing.T) {
	t.Parallel()

	var captured string
	serve(httptest.NewRequest(http.MethodGet, "/", nil), func(c internal.Context) (internal.Response, error) {
		captured = middlewares.GetRequestID(c)
		return nil, nil
	})
	require.Empty(t, captured)
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	t.Run("adds request_id to log records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.Config{Level: "debug", Format: "json", Output: &buf}, middlewares.RequestIDExtractor())

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "rid-7")

		serve(req, func(c internal.Context) (internal.Response, error) {
			c.Logger().InfoContext(c, "inside controller")
			return nil, nil
		},
			internal.WithLogger(log),
			internal.WithMiddleware(middlewares.RequestID()),
		)
		require.Contains(t, buf.String(), `"request_id":"rid-7"`)
	})

	t.Run("returns false without request ID", func(t *testing.T) {
		t.Parallel()

		_, ok := middlewares.RequestIDExtractor()(context.Background())
		require.False(t, ok)
	})

	t.Run("returns false for empty or mistyped values", func(t *testing.T) {
		t.Parallel()

		extract := middlewares.RequestIDExtractor()
		_, ok := extract(context.WithValue(context.Background(), struct{}{}, "x"))
		require.False(t, ok)
	})
}
