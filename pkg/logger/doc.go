// Package logger builds slog loggers for the dispatcher.
//
// Output is JSON or text on stdout. Context extractors attach request-scoped
// values such as the request ID to every record written with a context:
//
//	log := logger.New(cfg, requestid.Extractor())
//	log.InfoContext(ctx, "dispatched", slog.String("route", r.String()))
//
// With SENTRY_DSN set, warnings and errors are mirrored to Sentry.
// NewNope is the default when no logger is configured.
package logger
