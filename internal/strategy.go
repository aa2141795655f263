package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"reflect"
	"runtime"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/oauth2"

	"github.com/dmitrymomot/googleauth/pkg/logger"
	"github.com/dmitrymomot/googleauth/pkg/oauth"
)

// ProviderName identifies this strategy to the surrounding framework.
const ProviderName = "googleapis"

const panicStackSize = 4096

// OAuthClient is the part of an OAuth2 client the strategy needs.
type OAuthClient interface {
	// AuthCodeURL builds the provider consent URL with the given extra parameters.
	AuthCodeURL(params url.Values) string

	// Exchange trades an authorization code for tokens.
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
}

// ProfileFetcher retrieves the identity profile for an exchanged token.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, token *oauth2.Token) (*oauth.Profile, error)
}

// Authenticator is the contract between a strategy and the middleware that runs it.
type Authenticator interface {
	Name() string
	Authenticate(r *http.Request, opts ...AuthOption) Outcome
}

// Strategy runs Google's OAuth2 authorization code flow for one request at a time.
// All fields are set by New and never modified, so a Strategy may be shared
// by concurrent requests.
type Strategy struct {
	client      OAuthClient
	profiles    ProfileFetcher
	verify      VerifyFunc
	logger      *slog.Logger
	tracer      trace.Tracer
	httpClient  *http.Client
	scopes      []string
	passRequest bool
	extraParams bool
	skipProfile bool
}

var _ Authenticator = (*Strategy)(nil)

// New creates a Strategy. verify is required, as are the ClientID,
// ClientSecret and RedirectURL fields of cfg.
func New(cfg Config, verify VerifyFunc, opts ...Option) (*Strategy, error) {
	if verify == nil {
		return nil, ErrMissingVerify
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	s := &Strategy{
		verify: verify,
		scopes: slices.Clone(cfg.Scopes),
		logger: logger.NewNope(),
		tracer: noop.NewTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.profiles == nil {
		if pf, ok := s.client.(ProfileFetcher); ok {
			s.profiles = pf
		}
	}

	if s.client == nil || s.profiles == nil {
		gc, err := oauth.NewGoogleClient(oauth.GoogleConfig{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
		}, oauth.WithHTTPClient(s.httpClient))
		if err != nil {
			return nil, fmt.Errorf("googleauth: create google client: %w", err)
		}
		if s.client == nil {
			s.client = gc
		}
		if s.profiles == nil {
			s.profiles = gc
		}
	}

	return s, nil
}

// Name returns the provider identifier.
func (s *Strategy) Name() string {
	return ProviderName
}

// Authenticate inspects the request and returns exactly one outcome:
//   - Fail or Error when Google redirected back with an error,
//   - Success, Fail or Error after exchanging a returned authorization code,
//   - Redirect to Google's consent page otherwise.
func (s *Strategy) Authenticate(r *http.Request, opts ...AuthOption) Outcome {
	ctx, span := s.tracer.Start(r.Context(), "googleauth.authenticate",
		trace.WithAttributes(attribute.String(attrProvider, ProviderName)))
	defer span.End()

	out := s.authenticate(ctx, r, newAuthOptions(opts...))

	span.SetAttributes(attribute.String(attrOutcome, outcomeName(out)))
	if e, ok := out.(Error); ok {
		recordError(span, e.Err)
	}
	return out
}

// AuthorizationParams returns the extra parameters sent to the consent page.
// Only scope and access_type are ever set, and only when supplied.
func (s *Strategy) AuthorizationParams(opts ...AuthOption) url.Values {
	return s.authorizationParams(newAuthOptions(opts...))
}

func (s *Strategy) authorizationParams(o AuthOptions) url.Values {
	params := url.Values{}

	scope := o.Scope
	if len(scope) == 0 {
		scope = s.scopes
	}
	if len(scope) > 0 {
		params.Set("scope", strings.Join(scope, " "))
	}
	if o.AccessType != "" {
		params.Set("access_type", o.AccessType)
	}

	return params
}

func (s *Strategy) authenticate(ctx context.Context, r *http.Request, o AuthOptions) Outcome {
	q := r.URL.Query()

	if code := q.Get("error"); code != "" {
		description := q.Get("error_description")
		if code == ErrorCodeAccessDenied {
			s.logger.InfoContext(ctx, "authorization denied by user",
				slog.String("provider", ProviderName))
			return Fail{Challenge: description}
		}

		s.logger.WarnContext(ctx, "provider returned authorization error",
			slog.String("provider", ProviderName),
			slog.String("error_code", code))
		return Error{Err: NewAuthorizationError(description, code, q.Get("error_uri"))}
	}

	if code := q.Get("code"); code != "" {
		return s.handleCallback(ctx, r, code)
	}

	params := s.authorizationParams(o)
	s.logger.DebugContext(ctx, "redirecting to provider",
		slog.String("provider", ProviderName),
		slog.String("scope", params.Get("scope")))

	return Redirect{URL: s.client.AuthCodeURL(params), Status: http.StatusFound}
}

func (s *Strategy) handleCallback(ctx context.Context, r *http.Request, code string) Outcome {
	token, err := s.exchange(ctx, code)
	if err != nil {
		err = NormalizeTokenError(err)
		s.logger.WarnContext(ctx, "code exchange failed",
			slog.String("provider", ProviderName),
			slog.String("error", err.Error()))
		return Error{Err: err}
	}

	p := VerifyParams{
		Token:        token,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}

	if !s.skipProfile {
		profile, err := s.fetchProfile(ctx, token)
		if err != nil {
			s.logger.WarnContext(ctx, "profile fetch failed",
				slog.String("provider", ProviderName),
				slog.String("error", err.Error()))
			return Error{Err: err}
		}
		p.Profile = profile
	}

	if s.passRequest {
		p.Request = r
	}
	if s.extraParams {
		p.Params = map[string]any{}
	}

	return s.runVerify(ctx, p)
}

func (s *Strategy) exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	ctx, span := s.tracer.Start(ctx, "googleauth.exchange")
	defer span.End()

	token, err := s.client.Exchange(ctx, code)
	if err == nil && token == nil {
		err = errors.New("googleauth: empty token response")
	}
	recordError(span, err)
	return token, err
}

func (s *Strategy) fetchProfile(ctx context.Context, token *oauth2.Token) (*oauth.Profile, error) {
	ctx, span := s.tracer.Start(ctx, "googleauth.profile")
	defer span.End()

	profile, err := s.profiles.FetchProfile(ctx, token)
	recordError(span, err)
	return profile, err
}

func (s *Strategy) runVerify(ctx context.Context, p VerifyParams) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, panicStackSize)
			stack = stack[:runtime.Stack(stack, false)]

			s.logger.ErrorContext(ctx, "verify callback panicked",
				slog.Any("panic", r),
				slog.String("stack", string(stack)))

			out = Error{Err: &PanicError{Value: r, Stack: stack}}
		}
	}()

	user, info, err := s.verify(ctx, p)
	switch {
	case err != nil:
		return Error{Err: err}
	case isNilUser(user):
		return Fail{Challenge: info}
	default:
		return Success{User: user, Info: info}
	}
}

// isNilUser also treats typed nil pointers as "no user".
func isNilUser(user any) bool {
	if user == nil {
		return true
	}
	v := reflect.ValueOf(user)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}
