// Package common defines the error taxonomy shared by the client engine.
// Sentinel values are matched with errors.Is, structured errors with errors.As.
package common

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredentials means no usable token is available for a call
	// that requires one; the caller must route the user back to login.
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrLoginInProgress is returned when a login flow is already running.
	ErrLoginInProgress = errors.New("login already in progress")
)

// AuthError reports a failed or cancelled interactive login.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}

func (e *AuthError) Unwrap() error { return e.Err }

// TransportError means the network layer could not produce an
// interpretable response at all.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RemoteError is a non-success response from the backend. Message carries
// the raw response body for diagnostics.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// DecodingError means a response body did not match the expected shape,
// or a date field was unparseable by any supported format.
type DecodingError struct {
	Value string
	Err   error
}

func (e *DecodingError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("cannot decode value %q", e.Value)
	}
	return fmt.Sprintf("cannot decode response: %v", e.Err)
}

func (e *DecodingError) Unwrap() error { return e.Err }

// ValidationError is a local precondition failure; no network call was made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Reason)
}
