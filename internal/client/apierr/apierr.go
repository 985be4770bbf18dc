// Package apierr classifies failures of calls against the storefront API so
// callers can decide between rollback, re-login and manual retry.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the failure category of a request
type Kind string

const (
	KindNotAuthenticated Kind = "not_authenticated"
	KindNotFound         Kind = "not_found"
	KindValidation       Kind = "validation"
	KindTransport        Kind = "transport"
	KindConflict         Kind = "conflict"
	KindForbidden        Kind = "forbidden"
	KindUnknown          Kind = "unknown"
)

// Sentinels usable with errors.Is against any *Error of the same kind
var (
	ErrNotAuthenticated = &Error{Kind: KindNotAuthenticated, Message: "not authenticated"}
	ErrNotFound         = &Error{Kind: KindNotFound, Message: "not found"}
	ErrValidation       = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrTransport        = &Error{Kind: KindTransport, Message: "transport failure"}
	ErrConflict         = &Error{Kind: KindConflict, Message: "conflict"}
	ErrForbidden        = &Error{Kind: KindForbidden, Message: "forbidden"}
)

// Error is a classified API failure
type Error struct {
	Kind    Kind
	Status  int    // HTTP status, 0 when no response was received
	Code    string // server error code from the response envelope
	Message string
	Err     error // underlying cause, if any
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same kind
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Retryable reports whether re-invoking the operation manually may succeed
func (e *Error) Retryable() bool {
	return e.Kind == KindTransport
}

// New builds an error of the given kind
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Transport wraps a network-level failure (dial, timeout, decode)
func Transport(err error) *Error {
	return &Error{Kind: KindTransport, Message: "request failed", Err: err}
}

// FromStatus classifies a non-2xx response
func FromStatus(status int, code, message string) *Error {
	return &Error{Kind: KindForStatus(status), Status: status, Code: code, Message: message}
}

// KindForStatus maps an HTTP status to a failure kind
func KindForStatus(status int) Kind {
	switch status {
	case http.StatusUnauthorized:
		return KindNotAuthenticated
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return KindValidation
	case http.StatusConflict:
		return KindConflict
	case http.StatusRequestTimeout, http.StatusTooManyRequests,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return KindTransport
	default:
		return KindUnknown
	}
}

// KindOf returns the kind of err, or KindUnknown
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// UserMessage is the notice a consumer should surface for err
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return "Something went wrong"
	}
	switch e.Kind {
	case KindNotAuthenticated:
		return "Please sign in to manage your cart"
	case KindTransport:
		return "Network problem, please try again"
	}
	if e.Message != "" {
		return e.Message
	}
	return "Something went wrong"
}
