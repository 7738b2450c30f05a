package middlewares_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/dmitrymomot/dispatch/internal"
)

// serve runs req through an App with mws installed and fn as its only
// controller.
func serve(req *http.Request, fn func(c internal.Context) (internal.Response, error), opts ...internal.Option) *httptest.ResponseRecorder {
	opts = append(opts, internal.WithController(internal.Func(fn)))
	app := internal.New(opts...)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func page(body string) func(internal.Context) (internal.Response, error) {
	return func(internal.Context) (internal.Response, error) {
		return internal.Tpl{Data: body}, nil
	}
}
