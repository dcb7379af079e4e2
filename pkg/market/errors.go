package market

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthenticationRequired means the site served its login page: the
	// cookie set is stale or was never valid. Not recoverable without a new
	// cookie export.
	ErrAuthenticationRequired = errors.New("cookies are not authenticated")

	// ErrInvalidSession is returned when a Session is built without an
	// account id or csrf token.
	ErrInvalidSession = errors.New("session requires an account id and csrf token")

	// ErrRaiseControlMissing means a category page carries no raise button.
	ErrRaiseControlMissing = errors.New("raise button not found")
)

// ParseError reports a page or response that does not have the structure
// the site is known to serve.
type ParseError struct {
	// What names the missing piece, e.g. "data-app-data".
	What string
	URL  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %s: %s: %v", e.URL, e.What, e.Err)
	}
	return fmt.Sprintf("parse %s: %s", e.URL, e.What)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// StatusError is returned when a page fetch answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}
