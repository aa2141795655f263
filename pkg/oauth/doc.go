// Package oauth provides the Google side of the OAuth2 authorization code flow.
//
// GoogleClient generates consent URLs, exchanges authorization codes for tokens
// and reads the userinfo profile. IDTokenFetcher is an alternative profile
// source that verifies the OpenID Connect id_token instead of calling userinfo.
//
// # Usage
//
//	client, err := oauth.NewGoogleClient(oauth.GoogleConfig{
//		ClientID:     os.Getenv("GOOGLE_OAUTH_CLIENT_ID"),
//		ClientSecret: os.Getenv("GOOGLE_OAUTH_CLIENT_SECRET"),
//		RedirectURL:  "https://example.com/auth/google/callback",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Consent page URL, extra parameters are passed through verbatim
//	u := client.AuthCodeURL(url.Values{"scope": {"openid email"}})
//
//	// In the callback handler
//	token, err := client.Exchange(ctx, code)
//	if err != nil {
//		// *oauth2.RetrieveError carries the provider's status and body
//	}
//
//	profile, err := client.FetchProfile(ctx, token)
//
// The client never stores tokens. Each FetchProfile call builds its own
// authorized HTTP client from the token it is given, so one GoogleClient can
// serve concurrent requests.
//
// # Testing
//
// Use WithHTTPClient to route provider calls to a test server:
//
//	client, err := oauth.NewGoogleClient(cfg, oauth.WithHTTPClient(ts.Client()))
//
// # Error Handling
//
//   - ErrMissingClientID, ErrMissingClientSecret: constructor validation
//   - ErrNilToken: FetchProfile called without a token
//   - ErrFetchFailed, ErrNilResponse: transport failures
//   - ErrRequestFailed: provider returned non-OK status
//   - ErrDecodeFailed: provider JSON could not be decoded
//   - ErrMissingIDToken, ErrInvalidIDToken: id_token absent or rejected
//
// Errors are joined with their cause, check them with errors.Is.
package oauth
