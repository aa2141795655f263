// Package internal provides the core types and implementation of the Google
// authentication strategy.
//
// This package is internal and should not be used directly. Import
// "github.com/dmitrymomot/googleauth" instead, which re-exports the public API.
//
// # Core Types
//
//   - Strategy: runs one authorization code flow attempt per request
//   - Outcome: sealed result, one of Success, Fail, Error or Redirect
//   - VerifyFunc: application callback mapping a Google identity to a user
//   - VerifyParams: what the strategy learned, passed to VerifyFunc
//   - OAuthClient, ProfileFetcher: collaborators, replaceable for tests
//   - Config: client credentials, loadable from the environment
//
// # Flow
//
// Authenticate looks at the callback query in this order:
//
//  1. error present: access_denied yields Fail, anything else an Error
//     wrapping *AuthorizationError
//  2. code present: the code is exchanged, the profile fetched and the
//     verify callback decides between Success, Fail and Error
//  3. otherwise: Redirect to Google's consent page
//
// Token endpoint failures are passed through NormalizeTokenError, which
// yields *TokenError when Google answered with a JSON error body and
// *InternalOAuthError otherwise. Profile fetch failures are reported as is.
//
// A panic inside the verify callback is recovered and reported as an Error
// wrapping *PanicError.
//
// # Concurrency
//
// A Strategy holds no per-request state. Tokens travel through function
// arguments only, so a single Strategy can serve any number of concurrent
// requests.
package internal
