package internal

// HandlerFunc handles a request. A returned error is passed to the
// application's ErrorHandler once.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc.
//
//	func RequireSession(next dispatch.HandlerFunc) dispatch.HandlerFunc {
//	    return func(c dispatch.Context) error {
//	        if _, err := c.Session(); err != nil {
//	            return err
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler turns an error into a response.
type ErrorHandler func(Context, error) error
