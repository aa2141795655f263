package middlewares

import (
	"errors"
	"fmt"
)

// PanicError represents a panic recovered by the Recover middleware.
type PanicError struct {
	Value any    // The panic value
	Stack []byte // Stack trace (nil if disabled)
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
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

// statusCoder is implemented by errors that suggest an HTTP status,
// such as googleauth.AuthorizationError and googleauth.TokenError.
type statusCoder interface {
	StatusCode() int
}

// errorStatus returns the status suggested by err, or 500.
func errorStatus(err error) int {
	var sc statusCoder
	if errors.As(err, &sc) {
		if code := sc.StatusCode(); code >= 400 && code <= 599 {
			return code
		}
	}
	return 500
}
