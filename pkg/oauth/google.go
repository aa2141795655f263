package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"
	googleOAuth "golang.org/x/oauth2/google"
)

const (
	// GoogleProviderName is the identifier reported for Google profiles.
	GoogleProviderName = "googleapis"
	googleUserInfoURL  = "https://www.googleapis.com/oauth2/v2/userinfo"
	googleJWKSURL      = "https://www.googleapis.com/oauth2/v3/certs"
)

// GoogleDefaultScopes returns the scopes needed to read the userinfo profile.
func GoogleDefaultScopes() []string {
	return []string{
		"https://www.googleapis.com/auth/userinfo.email",
		"https://www.googleapis.com/auth/userinfo.profile",
	}
}

// GoogleClient talks to Google's OAuth2 and userinfo endpoints.
// It holds no per-user state and is safe for concurrent use.
type GoogleClient struct {
	config      *oauth2.Config
	httpClient  *http.Client
	userInfoURL string
}

// NewGoogleClient creates a client for the authorization code flow.
// Returns an error if ClientID or ClientSecret is empty.
func NewGoogleClient(cfg GoogleConfig, opts ...Option) (*GoogleClient, error) {
	if cfg.ClientID == "" {
		return nil, ErrMissingClientID
	}
	if cfg.ClientSecret == "" {
		return nil, ErrMissingClientSecret
	}

	o := newOptions(opts...)

	endpoint := googleOAuth.Endpoint
	if o.endpoint != nil {
		endpoint = *o.endpoint
	}

	// Scopes stay empty here: the caller decides per request whether a
	// scope parameter is sent at all.
	return &GoogleClient{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     endpoint,
		},
		httpClient:  o.httpClient,
		userInfoURL: o.userInfoURL,
	}, nil
}

// Name returns the provider identifier.
func (c *GoogleClient) Name() string {
	return GoogleProviderName
}

// AuthCodeURL builds the consent page URL with the given extra parameters.
// No state parameter is added.
func (c *GoogleClient) AuthCodeURL(params url.Values) string {
	opts := make([]oauth2.AuthCodeOption, 0, len(params))
	for key, values := range params {
		if len(values) == 0 {
			continue
		}
		opts = append(opts, oauth2.SetAuthURLParam(key, values[0]))
	}
	return c.config.AuthCodeURL("", opts...)
}

// Exchange trades an authorization code for tokens.
// Provider failures are returned as *oauth2.RetrieveError, unwrapped.
func (c *GoogleClient) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return c.config.Exchange(c.contextWithHTTPClient(ctx), code)
}

// FetchProfile reads the userinfo endpoint with a client authorized by token.
func (c *GoogleClient) FetchProfile(ctx context.Context, token *oauth2.Token) (*Profile, error) {
	if token == nil {
		return nil, ErrNilToken
	}

	client := c.config.Client(c.contextWithHTTPClient(ctx), token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userInfoURL, nil)
	if err != nil {
		return nil, errors.Join(ErrFetchFailed, fmt.Errorf("build userinfo request: %w", err))
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Join(ErrFetchFailed, fmt.Errorf("fetch userinfo: %w", err))
	}
	if resp == nil {
		return nil, errors.Join(ErrNilResponse, errors.New("unexpected nil response from google userinfo endpoint"))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Join(ErrFetchFailed, fmt.Errorf("read userinfo: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Join(ErrRequestFailed, fmt.Errorf("userinfo request failed: status=%d body=%s", resp.StatusCode, body))
	}

	var info googleUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, errors.Join(ErrDecodeFailed, fmt.Errorf("decode userinfo: %w", err))
	}

	return &Profile{
		Provider:      GoogleProviderName,
		ID:            info.ID,
		Email:         info.Email,
		VerifiedEmail: info.VerifiedEmail,
		Name:          info.Name,
		GivenName:     info.GivenName,
		FamilyName:    info.FamilyName,
		Picture:       info.Picture,
		Locale:        info.Locale,
		HostedDomain:  info.HostedDomain,
		Raw:           json.RawMessage(body),
	}, nil
}

func (c *GoogleClient) contextWithHTTPClient(ctx context.Context) context.Context {
	if c.httpClient != nil {
		return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	}
	return ctx
}

// googleUserInfo represents the response from Google's userinfo v2 endpoint.
type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
	Locale        string `json:"locale"`
	HostedDomain  string `json:"hd"`
	VerifiedEmail bool   `json:"verified_email"`
}
