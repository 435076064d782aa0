package domain

import (
	"errors"
	"fmt"
)

// GenericAuthMessage is shown when the remote service could not be reached
// or answered with something unreadable.
const GenericAuthMessage = "An error occurred. Please try again."

var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// AuthError is a sign-in or sign-up failure. Message is safe to show to the
// user verbatim.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth: %s: %v", e.Message, e.Err)
	}
	return "auth: " + e.Message
}

func (e *AuthError) Unwrap() error { return e.Err }

// NewAuthError returns an AuthError carrying msg, or the generic message when
// msg is empty.
func NewAuthError(msg string, cause error) *AuthError {
	if msg == "" {
		msg = GenericAuthMessage
	}
	return &AuthError{Message: msg, Err: cause}
}

// CatalogFetchError reports a failed catalog request. StatusCode is zero for
// transport and decode failures.
type CatalogFetchError struct {
	StatusCode int
	Err        error
}

func (e *CatalogFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("catalog fetch: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("catalog fetch: %v", e.Err)
}

func (e *CatalogFetchError) Unwrap() error { return e.Err }
