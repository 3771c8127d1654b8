package domain

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrServerOffline indicates the backend is unreachable
	ErrServerOffline = errors.New("server is unreachable")

	// ErrAuthFailed indicates the credentials or bearer token were rejected
	ErrAuthFailed = errors.New("authentication failed")

	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = errors.New("not found")

	// ErrNotLoggedIn indicates an authenticated call was made without a session
	ErrNotLoggedIn = errors.New("not logged in")
)

// ErrorKind classifies a failure at the repository boundary
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNetwork
	KindUnauthorized
	KindNotFound
	KindClient
	KindServer
	KindValidation
	KindCanceled
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindClient:
		return "client"
	case KindServer:
		return "server"
	case KindValidation:
		return "validation"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// APIError is a classified failure. StatusCode is the HTTP status when one
// was received, 0 otherwise.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	return msg
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NewValidationError returns a client-side validation failure. It carries
// status 400 so auth screens can report it the way the server would.
func NewValidationError(msg string) *APIError {
	return &APIError{Kind: KindValidation, StatusCode: 400, Message: msg}
}

// KindOf returns the classification of err
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	case errors.Is(err, ErrServerOffline):
		return KindNetwork
	case errors.Is(err, ErrAuthFailed), errors.Is(err, ErrNotLoggedIn):
		return KindUnauthorized
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	}
	return KindUnknown
}

// StatusOf returns the HTTP status carried by err, or 0
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// UserMessage returns the message to show for err
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	switch KindOf(err) {
	case KindNetwork:
		return "Server is unreachable"
	case KindUnauthorized:
		return "Please log in again"
	}
	return err.Error()
}
