package middlewares

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/dispatch/internal"
)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 30 * time.Second

// Timeout returns middleware that bounds the time spent in the rest of the
// pipeline. On expiry it returns a 504 HTTPError wrapping *TimeoutError.
//
// After the deadline Timeout still waits for the pipeline to return, so the
// controller scope is released and nothing writes to the response once this
// middleware is done. Long operations should watch
// GetTimeoutContext(c).Done() to unwind quickly. A panic in the pipeline is
// raised again on the calling goroutine where Recover can catch it.
func Timeout(timeout time.Duration) internal.Middleware {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c, timeout)
			defer cancel()

			c.Set(timeoutContextKey{}, ctx)

			done := make(chan result, 1)
			go func() {
				defer func() {
					if r := recover(); r != nil {
						done <- result{panicked: true, value: r}
					}
				}()
				done <- result{err: next(c)}
			}()

			var res result
			select {
			case res = <-done:
				return res.unwrap()
			case <-ctx.Done():
				res = <-done
			}

			err := res.unwrap()
			if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return err
			}

			c.Logger().WarnContext(c, "request timeout", slog.Duration("timeout", timeout))
			if c.Written() {
				return err
			}
			return internal.NewHTTPError(http.StatusGatewayTimeout, "",
				internal.WithError(&TimeoutError{Duration: timeout}),
			)
		}
	}
}

// result carries the pipeline outcome out of the worker goroutine.
type result struct {
	err      error
	value    any
	panicked bool
}

func (r result) unwrap() error {
	if r.panicked {
		panic(r.value)
	}
	return r.err
}

type timeoutContextKey struct{}

// GetTimeoutContext returns the context carrying the middleware deadline,
// or c itself when Timeout is not installed.
func GetTimeoutContext(c internal.Context) context.Context {
	if v, ok := c.Get(timeoutContextKey{}).(context.Context); ok {
		return v
	}
	return c
}
