package internal

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/trace"
)

// Option configures a Strategy.
type Option func(*Strategy)

// WithOAuthClient replaces the default Google client.
// Use it to inject a test double or a differently configured client.
func WithOAuthClient(c OAuthClient) Option {
	return func(s *Strategy) {
		if c != nil {
			s.client = c
		}
	}
}

// WithProfileFetcher replaces the default userinfo profile source.
func WithProfileFetcher(f ProfileFetcher) Option {
	return func(s *Strategy) {
		if f != nil {
			s.profiles = f
		}
	}
}

// WithHTTPClient sets the HTTP client used by the default Google client.
// It has no effect when WithOAuthClient is also given.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *Strategy) {
		s.httpClient = hc
	}
}

// WithScope sets the scope requested when a call does not specify one.
// Overrides Config.Scopes.
func WithScope(scopes ...string) Option {
	return func(s *Strategy) {
		s.scopes = scopes
	}
}

// WithPassRequest hands the inbound request to the verify callback.
func WithPassRequest() Option {
	return func(s *Strategy) {
		s.passRequest = true
	}
}

// WithExtraParams populates VerifyParams.Params with an empty, reserved map.
func WithExtraParams() Option {
	return func(s *Strategy) {
		s.extraParams = true
	}
}

// WithSkipProfile skips the profile fetch; the verify callback receives a nil profile.
func WithSkipProfile() Option {
	return func(s *Strategy) {
		s.skipProfile = true
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Strategy) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTracerProvider enables tracing of authentication attempts.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Strategy) {
		if tp != nil {
			s.tracer = tp.Tracer(tracerName)
		}
	}
}

// AuthOptions are the per-call settings of Authenticate.
type AuthOptions struct {
	Scope      []string
	AccessType string
}

// AuthOption configures a single Authenticate call.
type AuthOption func(*AuthOptions)

// WithAuthScope overrides the strategy scope for one call.
func WithAuthScope(scopes ...string) AuthOption {
	return func(o *AuthOptions) {
		o.Scope = scopes
	}
}

// WithAccessType sets Google's access_type parameter, e.g. "offline" to
// receive a refresh token.
func WithAccessType(accessType string) AuthOption {
	return func(o *AuthOptions) {
		o.AccessType = accessType
	}
}

func newAuthOptions(opts ...AuthOption) AuthOptions {
	var o AuthOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
