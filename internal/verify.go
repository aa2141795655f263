package internal

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/dmitrymomot/googleauth/pkg/oauth"
)

// VerifyParams is everything the strategy learned during an attempt.
type VerifyParams struct {
	// Request is set only when the strategy was built WithPassRequest.
	Request *http.Request

	// Params is set only when the strategy was built WithExtraParams.
	// It is always empty: the slot is reserved and carries no data yet.
	Params map[string]any

	// Profile is nil when the strategy was built WithSkipProfile.
	Profile *oauth.Profile

	// Token is the full token response, including any id_token.
	Token *oauth2.Token

	AccessToken string

	// RefreshToken is empty when Google did not issue one.
	RefreshToken string
}

// VerifyFunc maps an authenticated Google identity to an application user.
//
// Returning a non-nil error ends the attempt with Error. Returning a nil user
// ends it with Fail, using info as the challenge. Otherwise the attempt
// succeeds with user and info. A panic is recovered and reported as Error.
type VerifyFunc func(ctx context.Context, p VerifyParams) (user any, info any, err error)
