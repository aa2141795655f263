package internal

import "fmt"

// Outcome is the terminal result of one authentication attempt.
// It is one of Success, Fail, Error or Redirect.
type Outcome interface {
	outcome()
}

// Success reports an authenticated user.
type Success struct {
	User any
	Info any
}

// Fail reports that authentication did not succeed and should not be
// treated as a server error. Status is 0 when the strategy has no opinion.
type Fail struct {
	Challenge any
	Status    int
}

// Error reports a hard failure. It also satisfies the error interface.
type Error struct {
	Err error
}

func (e Error) Error() string {
	if e.Err == nil {
		return "googleauth: unknown error"
	}
	return e.Err.Error()
}

func (e Error) Unwrap() error {
	return e.Err
}

// Redirect sends the user agent to the provider.
type Redirect struct {
	URL    string
	Status int
}

func (Success) outcome()  {}
func (Fail) outcome()     {}
func (Error) outcome()    {}
func (Redirect) outcome() {}

// outcomeName is used for logs and span attributes.
func outcomeName(o Outcome) string {
	switch o.(type) {
	case Success:
		return "success"
	case Fail:
		return "fail"
	case Error:
		return "error"
	case Redirect:
		return "redirect"
	default:
		return fmt.Sprintf("%T", o)
	}
}
