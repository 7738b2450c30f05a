package internal

import "net/http"

// NewTestContext builds the request context an App with opts would create
// for r.
func NewTestContext(w http.ResponseWriter, r *http.Request, opts ...Option) Context {
	return newContext(w, r, New(opts...))
}
