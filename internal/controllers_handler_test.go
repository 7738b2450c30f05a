package internal_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dispatch/internal"
	"github.com/dmitrymomot/dispatch/pkg/logger"
)

func descriptors(t *testing.T, descs ...internal.ControllerDescriptor) []internal.ControllerDescriptor {
	t.Helper()

	s := internal.NewMetaStore()
	for _, d := range descs {
		require.NoError(t, s.Register(d))
	}
	s.Freeze()
	return append(s.Defaults(), s.Lookup("x")...)
}

func tpl(data, title string) internal.ControllerConstructor {
	return internal.Func(func(internal.Context) (internal.Response, error) {
		return internal.Tpl{Data: data, Title: title}, nil
	})
}

func TestControllersHandler_Execute(t *testing.T) {
	t.Parallel()

	newCtx := func() internal.Context {
		return internal.NewTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
	}

	t.Run("runs in order and collects", func(t *testing.T) {
		t.Parallel()

		ds := descriptors(t,
			internal.NewDescriptor(tpl("<header>", "Site")),
			internal.NewDescriptor(tpl("<article>", "Article"), internal.Action("x")),
			internal.NewDescriptor(tpl("", "Ignored"), internal.Action("x"), internal.Name("empty")),
		)

		col := internal.NewCollector()
		h := internal.NewControllersHandler(logger.NewNope(), nil)
		scope := internal.NewControllerFactory(nil).NewScope()
		defer scope.Close()

		outcome, err := h.Execute(newCtx(), scope, ds, col)
		require.NoError(t, err)
		require.Equal(t, internal.OutcomeContinue, outcome)
		require.Equal(t, []string{"<header>", "<article>"}, col.Main())
		require.Equal(t, "Article", col.Title())
		require.Equal(t, 3, scope.Len())
	})

	t.Run("failure aborts and keeps partial output", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		var thirdRan bool
		ds := descriptors(t,
			internal.NewDescriptor(tpl("<header>", ""), internal.Name("layout")),
			internal.NewDescriptor(internal.Func(func(internal.Context) (internal.Response, error) {
				return nil, boom
			}), internal.Action("x"), internal.Name("broken")),
			internal.NewDescriptor(internal.Func(func(internal.Context) (internal.Response, error) {
				thirdRan = true
				return nil, nil
			}), internal.Action("x"), internal.Name("after")),
		)

		var buf bytes.Buffer
		log := logger.New(logger.Config{Level: "error", Format: "json", Output: &buf})
		col := internal.NewCollector()
		scope := internal.NewControllerFactory(nil).NewScope()
		defer scope.Close()

		_, err := internal.NewControllersHandler(log, nil).Execute(newCtx(), scope, ds, col)
		require.ErrorIs(t, err, boom)

		ctrlErr := internal.AsControllerError(err)
		require.NotNil(t, ctrlErr)
		require.Equal(t, "broken", ctrlErr.Controller)
		require.False(t, thirdRan)
		require.Equal(t, []string{"<header>"}, col.Main())
		require.Contains(t, buf.String(), `"controller":"broken"`)
	})

	t.Run("constructor failure is a controller failure", func(t *testing.T) {
		t.Parallel()

		ds := descriptors(t, internal.NewDescriptor(func() (internal.Controller, error) {
			return nil, errors.New("no db")
		}, internal.Name("needs-db")))

		scope := internal.NewControllerFactory(nil).NewScope()
		defer scope.Close()

		_, err := internal.NewControllersHandler(logger.NewNope(), nil).Execute(newCtx(), scope, ds, internal.NewCollector())
		require.Equal(t, "needs-db", internal.AsControllerError(err).Controller)
	})

	t.Run("non-continue outcome stops the chain", func(t *testing.T) {
		t.Parallel()

		var laterRan bool
		ds := descriptors(t,
			internal.NewDescriptor(internal.Func(func(internal.Context) (internal.Response, error) {
				return internal.NotFound{}, nil
			})),
			internal.NewDescriptor(internal.Func(func(internal.Context) (internal.Response, error) {
				laterRan = true
				return nil, nil
			}), internal.Action("x")),
		)

		scope := internal.NewControllerFactory(nil).NewScope()
		defer scope.Close()

		outcome, err := internal.NewControllersHandler(logger.NewNope(), nil).Execute(newCtx(), scope, ds, internal.NewCollector())
		require.NoError(t, err)
		require.Equal(t, internal.OutcomeNotFound, outcome)
		require.False(t, laterRan)
	})

	t.Run("empty list", func(t *testing.T) {
		t.Parallel()

		scope := internal.NewControllerFactory(nil).NewScope()
		defer scope.Close()

		col := internal.NewCollector()
		outcome, err := internal.NewControllersHandler(logger.NewNope(), nil).Execute(newCtx(), scope, nil, col)
		require.NoError(t, err)
		require.Equal(t, internal.OutcomeContinue, outcome)
		require.True(t, col.Empty())
	})
}
