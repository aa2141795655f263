package googleauth

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/googleauth/internal"
	"github.com/dmitrymomot/googleauth/pkg/oauth"
)

// ProviderName is the identifier reported by Strategy.Name.
const ProviderName = internal.ProviderName

// Type aliases - public API
type (
	// Strategy runs Google's OAuth2 authorization code flow.
	// It is safe for concurrent use.
	Strategy = internal.Strategy

	// Config holds the client credentials registered with Google.
	Config = internal.Config

	// Outcome is the result of one authentication attempt.
	// It is one of Success, Fail, Error or Redirect.
	Outcome = internal.Outcome

	// Success reports an authenticated user.
	Success = internal.Success

	// Fail reports a non-exceptional authentication failure.
	Fail = internal.Fail

	// Error reports a hard failure. It implements error.
	Error = internal.Error

	// Redirect sends the user agent to Google's consent page.
	Redirect = internal.Redirect

	// VerifyFunc maps a Google identity to an application user.
	VerifyFunc = internal.VerifyFunc

	// VerifyParams is passed to VerifyFunc.
	VerifyParams = internal.VerifyParams

	// Option configures a Strategy.
	Option = internal.Option

	// AuthOption configures a single Authenticate call.
	AuthOption = internal.AuthOption

	// AuthOptions are the per-call settings of Authenticate.
	AuthOptions = internal.AuthOptions

	// OAuthClient builds consent URLs and exchanges codes.
	OAuthClient = internal.OAuthClient

	// ProfileFetcher retrieves the identity profile for a token.
	ProfileFetcher = internal.ProfileFetcher

	// Authenticator is implemented by Strategy and consumed by middlewares.
	Authenticator = internal.Authenticator

	// Profile is the normalized Google identity.
	Profile = oauth.Profile

	// AuthorizationError is an error Google reported on the redirect back.
	AuthorizationError = internal.AuthorizationError

	// TokenError is a normalized token endpoint error.
	TokenError = internal.TokenError

	// InternalOAuthError wraps an exchange failure that could not be normalized.
	InternalOAuthError = internal.InternalOAuthError

	// PanicError is a panic recovered from the verify callback.
	PanicError = internal.PanicError
)

// New creates a Strategy.
// verify is required, as are the ClientID, ClientSecret and RedirectURL
// fields of cfg.
//
// Example:
//
//	strategy, err := googleauth.New(cfg,
//	    func(ctx context.Context, p googleauth.VerifyParams) (any, any, error) {
//	        user, err := repo.FindOrCreateByGoogleID(ctx, p.Profile.ID, p.Profile.Email)
//	        return user, nil, err
//	    },
//	    googleauth.WithScope("openid", "email", "profile"),
//	)
func New(cfg Config, verify VerifyFunc, opts ...Option) (*Strategy, error) {
	return internal.New(cfg, verify, opts...)
}

// LoadConfig reads Config from the GOOGLE_OAUTH_* environment variables.
func LoadConfig() (Config, error) {
	return internal.LoadConfig()
}

// NormalizeTokenError converts a code exchange failure into a *TokenError
// or an *InternalOAuthError.
func NormalizeTokenError(err error) error {
	return internal.NormalizeTokenError(err)
}

// Strategy options

// WithOAuthClient replaces the default Google client.
func WithOAuthClient(c OAuthClient) Option {
	return internal.WithOAuthClient(c)
}

// WithProfileFetcher replaces the default userinfo profile source.
// Pass an *oauth.IDTokenFetcher to read the profile from the verified
// id_token instead; that requires the "openid" scope.
func WithProfileFetcher(f ProfileFetcher) Option {
	return internal.WithProfileFetcher(f)
}

// WithHTTPClient sets the HTTP client used for calls to Google.
func WithHTTPClient(hc *http.Client) Option {
	return internal.WithHTTPClient(hc)
}

// WithScope sets the default scope sent to the consent page.
func WithScope(scopes ...string) Option {
	return internal.WithScope(scopes...)
}

// WithPassRequest hands the inbound request to the verify callback.
func WithPassRequest() Option {
	return internal.WithPassRequest()
}

// WithExtraParams populates VerifyParams.Params with an empty, reserved map.
func WithExtraParams() Option {
	return internal.WithExtraParams()
}

// WithSkipProfile skips the profile fetch.
func WithSkipProfile() Option {
	return internal.WithSkipProfile()
}

// WithLogger sets the strategy logger.
// If nil, logging is disabled.
func WithLogger(l *slog.Logger) Option {
	return internal.WithLogger(l)
}

// WithTracerProvider enables OpenTelemetry spans for authentication attempts.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return internal.WithTracerProvider(tp)
}

// Authenticate options

// WithAuthScope overrides the strategy scope for one call.
func WithAuthScope(scopes ...string) AuthOption {
	return internal.WithAuthScope(scopes...)
}

// WithAccessType sets Google's access_type parameter.
// Use "offline" to receive a refresh token.
func WithAccessType(accessType string) AuthOption {
	return internal.WithAccessType(accessType)
}

// Error helpers

// IsAuthorizationError returns true if the error is an AuthorizationError.
func IsAuthorizationError(err error) bool {
	return internal.IsAuthorizationError(err)
}

// AsAuthorizationError extracts the AuthorizationError from an error if present.
func AsAuthorizationError(err error) (*AuthorizationError, bool) {
	return internal.AsAuthorizationError(err)
}

// IsTokenError returns true if the error is a TokenError.
func IsTokenError(err error) bool {
	return internal.IsTokenError(err)
}

// AsTokenError extracts the TokenError from an error if present.
func AsTokenError(err error) (*TokenError, bool) {
	return internal.AsTokenError(err)
}

// IsPanicError returns true if the error is a PanicError.
func IsPanicError(err error) bool {
	return internal.IsPanicError(err)
}

// OAuth error codes reported by Google in the redirect query.
const (
	ErrorCodeAccessDenied           = internal.ErrorCodeAccessDenied
	ErrorCodeServerError            = internal.ErrorCodeServerError
	ErrorCodeTemporarilyUnavailable = internal.ErrorCodeTemporarilyUnavailable
)

// Construction errors.
var (
	ErrMissingVerify       = internal.ErrMissingVerify
	ErrMissingClientID     = internal.ErrMissingClientID
	ErrMissingClientSecret = internal.ErrMissingClientSecret
	ErrMissingRedirectURL  = internal.ErrMissingRedirectURL
)
