package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTransport wraps network failures: the request never produced a response.
	ErrTransport error = &failure{msg: "api: transport failure", status: http.StatusBadGateway}
	// ErrSessionExpired is returned after the backend answered 401. The session
	// has already been cleared when the caller sees it.
	ErrSessionExpired error = &failure{msg: "Session expired. Please login again.", status: http.StatusUnauthorized}
	// ErrDecode wraps undecodable response bodies.
	ErrDecode error = &failure{msg: "api: malformed response", status: http.StatusBadGateway}
)

// failure is a client sentinel that knows how the console answers it.
type failure struct {
	msg    string
	status int
}

func (f *failure) Error() string { return f.msg }

// HTTPStatus is the status a handler answers with.
func (f *failure) HTTPStatus() int { return f.status }

// StatusError is a non-2xx response other than 401.
type StatusError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

// HTTPStatus passes the backend's status through.
func (e *StatusError) HTTPStatus() int {
	return e.Status
}

// NotFound reports whether the backend answered 404.
func (e *StatusError) NotFound() bool {
	return e.Status == http.StatusNotFound
}

func defaultStatusMessage(status int) string {
	return fmt.Sprintf("HTTP error! status: %d", status)
}

// StatusOf extracts the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	if errors.Is(err, ErrSessionExpired) {
		return http.StatusUnauthorized
	}
	return 0
}
