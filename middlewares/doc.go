// Package middlewares provides middleware for dispatch applications.
//
// # Request ID
//
// RequestID assigns an ID to each request, reusing an upstream header when
// present. Pair it with RequestIDExtractor so every log record carries it:
//
//	app := dispatch.New(
//	    dispatch.WithLogger(logger.New(cfg, middlewares.RequestIDExtractor())),
//	    dispatch.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover
//
// Recover converts panics raised by controllers, their constructors or the
// renderer into *PanicError, which the error handler renders as a 500.
//
//	dispatch.WithMiddleware(
//	    middlewares.RequestID(),
//	    middlewares.Recover(),
//	)
//
// # Timeout
//
// Timeout bounds the pipeline and answers 504 on expiry. Long running
// controllers should watch GetTimeoutContext(c).Done().
//
//	dispatch.WithMiddleware(middlewares.Timeout(5 * time.Second))
package middlewares
