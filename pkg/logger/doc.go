// Package logger builds slog loggers with context extraction and optional
// Sentry fan-out.
//
// A ContextExtractor turns a request-scoped context value into a log
// attribute. Extractors run on every log call:
//
//	log := logger.New(
//		logger.WithExtractors(
//			logger.FromContextKey(requestIDKey{}, "request_id"),
//			logger.Static("service", "shop"),
//		),
//	)
//	log.InfoContext(ctx, "dispatched", slog.String("route", "/users/list"))
//
// Output is JSON on stdout by default. WithWriter, WithLevel and WithText
// change destination, threshold and format.
//
// # Sentry
//
// NewWithSentry sends errors to Sentry as issues and warnings as logs while
// still writing locally:
//
//	log := logger.NewWithSentry(logger.SentryConfig{
//		DSN:         os.Getenv("SENTRY_DSN"),
//		Environment: "staging",
//	})
//
// An empty DSN produces a local-only logger, so the same code path works in
// development.
//
// # Handler errors
//
// When a destination fails, Handle returns an *Error naming the handler.
// Code that logs errors it receives should skip *Error values to avoid
// feeding a broken handler its own failure.
package logger
