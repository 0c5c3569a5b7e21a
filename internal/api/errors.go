package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthenticated indicates the credential was missing or rejected.
// Match with errors.Is: the gateway returns a *RequestError for 401s so the
// server's detail message survives, and that error matches this sentinel.
// The credential slot has already been cleared when an error matching it is
// returned.
var ErrUnauthenticated = errors.New("unauthenticated")

// RequestError is a request failure (4xx/5xx) carrying the server's detail
// message. Except for the 401 credential clearing in the gateway it is
// scoped to the triggering call and has no global side effects.
type RequestError struct {
	// Status is the HTTP status code.
	Status int

	// Detail is the server's human-readable message, "" when absent.
	Detail string
}

func (e *RequestError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("request failed (status %d)", e.Status)
	}
	return e.Detail
}

// Is makes 401 request errors match the ErrUnauthenticated sentinel.
func (e *RequestError) Is(target error) bool {
	return target == ErrUnauthenticated && e.Status == http.StatusUnauthorized
}

// Detail returns the server message from err when it is a *RequestError with
// one, and fallback otherwise. Used to surface readable errors to the user.
func Detail(err error, fallback string) string {
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Detail != "" {
		return reqErr.Detail
	}
	return fallback
}
