package internal_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dispatch/internal"
)

func TestAsHTTPError(t *testing.T) {
	t.Parallel()

	t.Run("wrapped", func(t *testing.T) {
		t.Parallel()

		httpErr := internal.ErrNotFound("")
		err := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", httpErr))
		require.Same(t, httpErr, internal.AsHTTPError(err))
		require.Equal(t, "Not Found", httpErr.Message)
	})

	t.Run("unrelated", func(t *testing.T) {
		t.Parallel()
		require.Nil(t, internal.AsHTTPError(errors.New("boom")))
		require.Nil(t, internal.AsHTTPError(nil))
	})

	t.Run("options", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("db down")
		e := internal.NewHTTPError(http.StatusServiceUnavailable, "try later",
			internal.WithTitle("Unavailable"),
			internal.WithDetail("maintenance"),
			internal.WithRequestID("req-1"),
			internal.WithError(cause),
		)
		require.Equal(t, "Unavailable", e.Title)
		require.Equal(t, "maintenance", e.Detail)
		require.Equal(t, "req-1", e.RequestID)
		require.ErrorIs(t, e, cause)
		require.Equal(t, http.StatusServiceUnavailable, e.StatusCode())
		require.Equal(t, "Service Unavailable", e.StatusText())
	})
}

func TestControllerError(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := fmt.Errorf("dispatch: %w", &internal.ControllerError{Controller: "news", Err: cause})

	ctrlErr := internal.AsControllerError(err)
	require.NotNil(t, ctrlErr)
	require.Equal(t, "news", ctrlErr.Controller)
	require.ErrorIs(t, err, cause)
	require.Equal(t, `controller "news": boom`, ctrlErr.Error())
}
