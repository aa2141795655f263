package oauth

import (
	"net/http"

	"golang.org/x/oauth2"
)

// Option configures a GoogleClient or IDTokenFetcher.
type Option func(*options)

type options struct {
	httpClient  *http.Client
	endpoint    *oauth2.Endpoint
	userInfoURL string
	jwksURL     string

	// test hook, see export_test.go
	skipSignatureCheck bool
}

// WithHTTPClient sets a custom HTTP client for OAuth requests.
// This is useful for testing with httptest servers or injecting
// custom transports (e.g., logging, proxies).
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithEndpoint overrides Google's authorization and token endpoints.
func WithEndpoint(ep oauth2.Endpoint) Option {
	return func(o *options) {
		o.endpoint = &ep
	}
}

// WithUserInfoURL overrides the userinfo endpoint used by FetchProfile.
func WithUserInfoURL(u string) Option {
	return func(o *options) {
		if u != "" {
			o.userInfoURL = u
		}
	}
}

// WithJWKSURL overrides the key set used to verify id_tokens.
func WithJWKSURL(u string) Option {
	return func(o *options) {
		if u != "" {
			o.jwksURL = u
		}
	}
}

func newOptions(opts ...Option) options {
	o := options{
		userInfoURL: googleUserInfoURL,
		jwksURL:     googleJWKSURL,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
