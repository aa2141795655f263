package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config controls log output.
type Config struct {
	Output            io.Writer  `env:"-"`
	Format            string     `env:"LOG_FORMAT" envDefault:"json"`
	SentryDSN         string     `env:"SENTRY_DSN"`
	SentryEnvironment string     `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	Level             slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	// SentryMinLevel is the lowest level stored in Sentry as a log entry.
	// Errors always create Sentry events.
	SentryMinLevel slog.Level `env:"SENTRY_MIN_LEVEL" envDefault:"WARN"`
}

// New creates a logger from cfg with optional context extractors.
// When SentryDSN is set, records are also sent to Sentry; if Sentry cannot be
// initialized the logger keeps writing to Output only.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	base := newBaseHandler(cfg)

	handler := base
	if cfg.SentryDSN != "" {
		if sh, err := newSentryHandler(cfg); err != nil {
			slog.New(base).Error("failed to initialize sentry", slog.String("error", err.Error()))
		} else {
			handler = fanoutHandler{base, sh}
		}
	}

	return slog.New(newContextHandler(handler, extractors...))
}

// NewNope creates a no-op logger that discards all output.
// Use this as a default when logging is not configured.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newBaseHandler(cfg Config) slog.Handler {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}

	if strings.EqualFold(cfg.Format, "text") {
		return slog.NewTextHandler(out, opts)
	}
	return slog.NewJSONHandler(out, opts)
}
