// Package logger builds slog loggers with context extraction and optional
// Sentry reporting.
//
// # Basic Usage
//
//	log := logger.New(logger.Config{Level: slog.LevelDebug}, middlewares.RequestIDExtractor())
//	log.InfoContext(ctx, "callback handled", slog.String("provider", "googleapis"))
//	// {"level":"INFO","msg":"callback handled","provider":"googleapis","request_id":"..."}
//
// A ContextExtractor runs on every log call and may add one attribute taken
// from the context. Returning false skips the attribute for that record.
//
// # Sentry
//
// Set Config.SentryDSN to also send records to Sentry. Errors create issues;
// records at or above SentryMinLevel are stored as Sentry logs. An empty DSN,
// or a failed Sentry init, leaves the logger writing to Output only, so the
// same setup works in development.
//
// # Discarding
//
// NewNope returns a logger that drops everything. Components use it as their
// default so a nil logger is never dereferenced.
package logger
