// internal/pkg/apierr/apierr.go

// Package apierr defines the error shape remote calls resolve to and
// the helper that turns any failure into a user-displayable message.
package apierr

import "errors"

// ErrUnauthorized is returned for 401-style failures and expired tokens
var ErrUnauthorized = errors.New("unauthorized")

// GenericMessage is shown when the server supplies no message
const GenericMessage = "Something went wrong. Please try again."

// APIError carries the HTTP status and the server's `message` field
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return GenericMessage
}

// UserMessage returns the server-supplied message for display
func (e *APIError) UserMessage() string {
	return e.Message
}

// Message derives a displayable message from a remote-call error,
// preferring the server-supplied message when present and falling back
// to a generic string otherwise.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, ErrUnauthorized) {
		return "Your session has expired. Please sign in again."
	}
	return GenericMessage
}
