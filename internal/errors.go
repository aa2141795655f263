package internal

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"
)

// OAuth error codes reported by Google in the redirect query.
const (
	ErrorCodeAccessDenied           = "access_denied"
	ErrorCodeServerError            = "server_error"
	ErrorCodeTemporarilyUnavailable = "temporarily_unavailable"
)

var (
	// ErrMissingVerify is returned by New when no verify callback is given.
	ErrMissingVerify = errors.New("googleauth: verify callback is required")

	// ErrMissingClientID is returned by New when Config.ClientID is empty.
	ErrMissingClientID = errors.New("googleauth: client ID is required")

	// ErrMissingClientSecret is returned by New when Config.ClientSecret is empty.
	ErrMissingClientSecret = errors.New("googleauth: client secret is required")

	// ErrMissingRedirectURL is returned by New when Config.RedirectURL is empty.
	ErrMissingRedirectURL = errors.New("googleauth: redirect URL is required")
)

const tokenExchangeFailed = "failed to obtain access token"

// AuthorizationError is an error Google reported on the redirect back to the
// application, other than a plain user denial.
type AuthorizationError struct {
	Description string
	Code        string
	URI         string
	Status      int
}

// NewAuthorizationError maps the provider code to an HTTP status.
func NewAuthorizationError(description, code, uri string) *AuthorizationError {
	status := http.StatusInternalServerError
	switch code {
	case ErrorCodeAccessDenied:
		status = http.StatusForbidden
	case ErrorCodeServerError:
		status = http.StatusBadGateway
	case ErrorCodeTemporarilyUnavailable:
		status = http.StatusServiceUnavailable
	}
	return &AuthorizationError{
		Description: description,
		Code:        code,
		URI:         uri,
		Status:      status,
	}
}

func (e *AuthorizationError) Error() string {
	if e.Description != "" {
		return e.Description
	}
	return e.Code
}

func (e *AuthorizationError) StatusCode() int {
	return e.Status
}

// TokenError is a normalized error response from the token endpoint.
type TokenError struct {
	Description string
	Code        string
	URI         string
	Status      int
}

func (e *TokenError) Error() string {
	if e.Description != "" {
		return e.Description
	}
	return e.Code
}

func (e *TokenError) StatusCode() int {
	return e.Status
}

// InternalOAuthError wraps a token exchange failure that could not be
// normalized into a TokenError.
type InternalOAuthError struct {
	Err     error
	Message string
}

func (e *InternalOAuthError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *InternalOAuthError) Unwrap() error {
	return e.Err
}

// PanicError represents a panic recovered from a verify callback.
type PanicError struct {
	Value any    // The panic value
	Stack []byte // Stack trace
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// NormalizeTokenError converts a code exchange failure into a TokenError when
// the provider answered with a JSON error body, and into an InternalOAuthError
// otherwise. It never fails: an unreadable body degrades to the generic error.
func NormalizeTokenError(err error) error {
	if err == nil {
		return nil
	}
	if te := parseTokenError(err); te != nil {
		return te
	}
	return &InternalOAuthError{Message: tokenExchangeFailed, Err: err}
}

func parseTokenError(err error) *TokenError {
	var re *oauth2.RetrieveError
	if !errors.As(err, &re) || re.Response == nil || len(re.Body) == 0 {
		return nil
	}
	if !gjson.ValidBytes(re.Body) {
		return nil
	}

	body := gjson.ParseBytes(re.Body)
	code := body.Get("error")
	if !code.Exists() {
		return nil
	}

	return &TokenError{
		Description: body.Get("error_description").String(),
		Code:        code.String(),
		URI:         body.Get("error_uri").String(),
		Status:      re.Response.StatusCode,
	}
}

// IsAuthorizationError returns true if the error is an AuthorizationError.
func IsAuthorizationError(err error) bool {
	var ae *AuthorizationError
	return errors.As(err, &ae)
}

// AsAuthorizationError extracts the AuthorizationError from an error if present.
func AsAuthorizationError(err error) (*AuthorizationError, bool) {
	var ae *AuthorizationError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsTokenError returns true if the error is a TokenError.
func IsTokenError(err error) bool {
	var te *TokenError
	return errors.As(err, &te)
}

// AsTokenError extracts the TokenError from an error if present.
func AsTokenError(err error) (*TokenError, bool) {
	var te *TokenError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// IsPanicError returns true if the error is a PanicError.
func IsPanicError(err error) bool {
	var pe *PanicError
	return errors.As(err, &pe)
}

// AsPanicError extracts the PanicError from an error if present.
func AsPanicError(err error) (*PanicError, bool) {
	var pe *PanicError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
