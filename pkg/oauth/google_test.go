package oauth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/dmitrymomot/googleauth/pkg/oauth"
)

func newTestGoogleClient(t *testing.T, handler http.Handler, cfg ...oauth.GoogleConfig) *oauth.GoogleClient {
	t.Helper()

	c := oauth.GoogleConfig{
		ClientID:     "test-id",
		ClientSecret: "test-secret",
		RedirectURL:  "https://example.com/callback",
	}
	if len(cfg) > 0 {
		c = cfg[0]
	}

	transport := &googleRewriteTransport{base: http.DefaultTransport, handler: handler}
	client, err := oauth.NewGoogleClient(c, oauth.WithHTTPClient(&http.Client{Transport: transport}))
	require.NoError(t, err)
	return client
}

func TestNewGoogleClient(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()
		c, err := oauth.NewGoogleClient(oauth.GoogleConfig{
			ClientID:     "test-id",
			ClientSecret: "test-secret",
		})
		require.NoError(t, err)
		require.NotNil(t, c)
		require.Equal(t, "googleapis", c.Name())
	})

	t.Run("missing client ID", func(t *testing.T) {
		t.Parallel()
		c, err := oauth.NewGoogleClient(oauth.GoogleConfig{
			ClientSecret: "test-secret",
		})
		require.ErrorIs(t, err, oauth.ErrMissingClientID)
		require.Nil(t, c)
	})

	t.Run("missing client secret", func(t *testing.T) {
		t.Parallel()
		c, err := oauth.NewGoogleClient(oauth.GoogleConfig{
			ClientID: "test-id",
		})
		require.ErrorIs(t, err, oauth.ErrMissingClientSecret)
		require.Nil(t, c)
	})
}

func TestGoogleDefaultScopes(t *testing.T) {
	t.Parallel()
	scopes := oauth.GoogleDefaultScopes()
	require.Len(t, scopes, 2)
	require.Contains(t, scopes, "https://www.googleapis.com/auth/userinfo.email")
	require.Contains(t, scopes, "https://www.googleapis.com/auth/userinfo.profile")
}

func TestGoogleClient_AuthCodeURL(t *testing.T) {
	t.Parallel()

	c, err := oauth.NewGoogleClient(oauth.GoogleConfig{
		ClientID:     "test-id",
		ClientSecret: "test-secret",
		RedirectURL:  "https://example.com/callback",
	})
	require.NoError(t, err)

	t.Run("no params", func(t *testing.T) {
		t.Parallel()
		u, err := url.Parse(c.AuthCodeURL(nil))
		require.NoError(t, err)

		require.Equal(t, "accounts.google.com", u.Host)
		q := u.Query()
		require.Equal(t, "code", q.Get("response_type"))
		require.Equal(t, "test-id", q.Get("client_id"))
		require.Equal(t, "https://example.com/callback", q.Get("redirect_uri"))
		require.False(t, q.Has("scope"))
		require.False(t, q.Has("state"))
		require.False(t, q.Has("access_type"))
	})

	t.Run("scope and access type", func(t *testing.T) {
		t.Parallel()
		u, err := url.Parse(c.AuthCodeURL(url.Values{
			"scope":       {"openid email"},
			"access_type": {"offline"},
		}))
		require.NoError(t, err)

		q := u.Query()
		require.Equal(t, "openid email", q.Get("scope"))
		require.Equal(t, "offline", q.Get("access_type"))
	})

	t.Run("empty values are skipped", func(t *testing.T) {
		t.Parallel()
		u, err := url.Parse(c.AuthCodeURL(url.Values{"scope": {}}))
		require.NoError(t, err)
		require.False(t, u.Query().Has("scope"))
	})
}

func TestGoogleClient_CustomEndpoint(t *testing.T) {
	t.Parallel()

	c, err := oauth.NewGoogleClient(
		oauth.GoogleConfig{ClientID: "test-id", ClientSecret: "test-secret"},
		oauth.WithEndpoint(oauth2.Endpoint{
			AuthURL:  "https://idp.example.com/auth",
			TokenURL: "https://idp.example.com/token",
		}),
	)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(c.AuthCodeURL(nil), "https://idp.example.com/auth?"))
}

func TestGoogleClient_Exchange(t *testing.T) {
	t.Parallel()

	t.Run("successful exchange", func(t *testing.T) {
		t.Parallel()

		var receivedCode, receivedRedirectURI string
		c := newTestGoogleClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			receivedCode = r.FormValue("code")
			receivedRedirectURI = r.FormValue("redirect_uri")
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"access_token":  "test-access-token",
				"refresh_token": "test-refresh-token",
				"token_type":    "Bearer",
				"expires_in":    3600,
			})
		}))

		token, err := c.Exchange(context.Background(), "test-code")
		require.NoError(t, err)
		require.Equal(t, "test-access-token", token.AccessToken)
		require.Equal(t, "test-refresh-token", token.RefreshToken)
		require.Equal(t, "test-code", receivedCode)
		require.Equal(t, "https://example.com/callback", receivedRedirectURI)
	})

	t.Run("invalid code returns retrieve error", func(t *testing.T) {
		t.Parallel()

		c := newTestGoogleClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error":             "invalid_grant",
				"error_description": "Bad Request",
			})
		}))

		_, err := c.Exchange(context.Background(), "bad-code")
		require.Error(t, err)

		var re *oauth2.RetrieveError
		require.True(t, errors.As(err, &re))
		require.Equal(t, http.StatusBadRequest, re.Response.StatusCode)
		require.Contains(t, string(re.Body), "invalid_grant")
	})
}

func TestGoogleClient_FetchProfile(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		var authHeader string
		c := newTestGoogleClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id":             "12345",
				"email":          "user@example.com",
				"name":           "Test User",
				"given_name":     "Test",
				"family_name":    "User",
				"picture":        "https://example.com/photo.jpg",
				"locale":         "en",
				"hd":             "example.com",
				"verified_email": true,
			})
		}))

		profile, err := c.FetchProfile(context.Background(), &oauth2.Token{AccessToken: "test-token"})
		require.NoError(t, err)
		require.Equal(t, "Bearer test-token", authHeader)
		require.Equal(t, "googleapis", profile.Provider)
		require.Equal(t, "12345", profile.ID)
		require.Equal(t, "user@example.com", profile.Email)
		require.True(t, profile.VerifiedEmail)
		require.Equal(t, "Test User", profile.Name)
		require.Equal(t, "Test", profile.GivenName)
		require.Equal(t, "User", profile.FamilyName)
		require.Equal(t, "https://example.com/photo.jpg", profile.Picture)
		require.Equal(t, "en", profile.Locale)
		require.Equal(t, "example.com", profile.HostedDomain)
		require.Contains(t, string(profile.Raw), `"id":"12345"`)
	})

	t.Run("unverified email is passed through", func(t *testing.T) {
		t.Parallel()

		c := newTestGoogleClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id":             "12345",
				"email":          "user@example.com",
				"verified_email": false,
			})
		}))

		profile, err := c.FetchProfile(context.Background(), &oauth2.Token{AccessToken: "test-token"})
		require.NoError(t, err)
		require.False(t, profile.VerifiedEmail)
	})

	t.Run("nil token", func(t *testing.T) {
		t.Parallel()

		c := newTestGoogleClient(t, http.NotFoundHandler())
		profile, err := c.FetchProfile(context.Background(), nil)
		require.ErrorIs(t, err, oauth.ErrNilToken)
		require.Nil(t, profile)
	})

	t.Run("non-OK status", func(t *testing.T) {
		t.Parallel()

		c := newTestGoogleClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("forbidden"))
		}))

		profile, err := c.FetchProfile(context.Background(), &oauth2.Token{AccessToken: "test-token"})
		require.ErrorIs(t, err, oauth.ErrRequestFailed)
		require.Nil(t, profile)
	})

	t.Run("bad JSON", func(t *testing.T) {
		t.Parallel()

		c := newTestGoogleClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("not-json"))
		}))

		profile, err := c.FetchProfile(context.Background(), &oauth2.Token{AccessToken: "test-token"})
		require.ErrorIs(t, err, oauth.ErrDecodeFailed)
		require.Nil(t, profile)
	})

	t.Run("custom userinfo URL", func(t *testing.T) {
		t.Parallel()

		var path string
		transport := &googleRewriteTransport{
			base: http.DefaultTransport,
			handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				path = r.URL.Path
				_, _ = w.Write([]byte(`{"id":"1"}`))
			}),
		}
		c, err := oauth.NewGoogleClient(
			oauth.GoogleConfig{ClientID: "test-id", ClientSecret: "test-secret"},
			oauth.WithHTTPClient(&http.Client{Transport: transport}),
			oauth.WithUserInfoURL("https://openidconnect.googleapis.com/v1/userinfo"),
		)
		require.NoError(t, err)

		_, err = c.FetchProfile(context.Background(), &oauth2.Token{AccessToken: "test-token"})
		require.NoError(t, err)
		require.Equal(t, "/v1/userinfo", path)
	})
}

// googleRewriteTransport intercepts requests to Google endpoints and routes them
// to a local handler instead.
type googleRewriteTransport struct {
	base    http.RoundTripper
	handler http.Handler
}

func (t *googleRewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if strings.Contains(req.URL.Host, "google") || strings.Contains(req.URL.Host, "googleapis") {
		recorder := httptest.NewRecorder()
		t.handler.ServeHTTP(recorder, req)
		return recorder.Result(), nil
	}
	return t.base.RoundTrip(req)
}
