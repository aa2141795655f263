// Package googleauth authenticates users with Google using the OAuth2
// authorization code flow.
//
// A Strategy inspects one inbound HTTP request and returns exactly one
// Outcome. It never writes to the response itself: the caller, usually the
// Authenticate middleware from the middlewares package, decides what to do
// with the result.
//
// # Quick Start
//
//	cfg, err := googleauth.LoadConfig()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	strategy, err := googleauth.New(cfg,
//	    func(ctx context.Context, p googleauth.VerifyParams) (any, any, error) {
//	        user, err := users.FindByGoogleID(ctx, p.Profile.ID)
//	        if errors.Is(err, sql.ErrNoRows) {
//	            return nil, "unknown account", nil
//	        }
//	        return user, nil, err
//	    },
//	    googleauth.WithScope("openid", "email", "profile"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Outcomes
//
// Authenticate returns one of:
//
//   - Redirect: no code and no error in the query; send the user to URL
//   - Success: verify returned a user
//   - Fail: the user denied access, or verify returned no user
//   - Error: provider error, token exchange failure, profile failure,
//     verify error or a recovered verify panic
//
// Handle them with a type switch:
//
//	switch out := strategy.Authenticate(r).(type) {
//	case googleauth.Redirect:
//	    http.Redirect(w, r, out.URL, out.Status)
//	case googleauth.Success:
//	    // start a session for out.User
//	case googleauth.Fail:
//	    http.Error(w, "login failed", http.StatusUnauthorized)
//	case googleauth.Error:
//	    http.Error(w, out.Error(), http.StatusInternalServerError)
//	}
//
// # Verify Callback
//
// VerifyFunc receives a VerifyParams value. Request is populated only with
// WithPassRequest, Params only with WithExtraParams. RefreshToken is empty
// unless Google issued one, which requires WithAccessType("offline").
//
// # Configuration
//
// LoadConfig reads these environment variables:
//
//   - GOOGLE_OAUTH_CLIENT_ID
//   - GOOGLE_OAUTH_CLIENT_SECRET
//   - GOOGLE_OAUTH_REDIRECT_URL
//   - GOOGLE_OAUTH_SCOPES (comma separated, optional)
//
// # Error Handling
//
// Error outcomes wrap typed errors, inspect them with the helpers:
//
//   - *AuthorizationError: Google redirected back with an error code
//   - *TokenError: the token endpoint returned a JSON error body
//   - *InternalOAuthError: any other exchange failure
//   - *PanicError: the verify callback panicked
//
// AuthorizationError and TokenError carry a suggested HTTP status in
// StatusCode.
//
// # State
//
// The strategy does not generate or check the OAuth state parameter.
// Applications that need CSRF protection on the callback add it around the
// strategy, for example with a signed cookie.
package googleauth
