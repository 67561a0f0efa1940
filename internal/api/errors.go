package api

import (
	"errors"
	"fmt"
)

// TransportError covers everything that happens before a usable response
// arrives: dial failures, timeouts, cancelled contexts and undecodable bodies.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// BackendError is a non-2xx response. Message holds the body's "error" field
// when the backend sent one.
type BackendError struct {
	Op      string
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: backend returned %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: backend returned %d", e.Op, e.Status)
}

// IsBackend reports whether err is a BackendError
func IsBackend(err error) bool {
	var be *BackendError
	return errors.As(err, &be)
}

// Describe turns an error into the text shown to the user. Backend errors
// surface their own message, falling back to backendFallback when the body
// carried none. Anything else gets transportFallback.
func Describe(err error, backendFallback, transportFallback string) string {
	var be *BackendError
	if errors.As(err, &be) {
		if be.Message != "" {
			return be.Message
		}
		return backendFallback
	}
	return transportFallback
}
