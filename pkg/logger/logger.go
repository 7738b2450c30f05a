package logger

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// New builds a logger from cfg. Extractors add request-scoped attributes on
// every record. When cfg.SentryDSN is set, warnings and errors are also sent
// to Sentry and errors become Sentry issues.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	base := cfg.handler()
	if cfg.SentryDSN == "" {
		return slog.New(WithExtractors(base, extractors...))
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		EnableLogs:  true,
	})
	if err != nil {
		slog.New(base).Error("sentry init failed, logging locally only", slog.String("error", err.Error()))
		return slog.New(WithExtractors(base, extractors...))
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background())

	return slog.New(WithExtractors(fanout{base, sentryHandler}, extractors...))
}

// NewNope returns a logger that discards everything.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
