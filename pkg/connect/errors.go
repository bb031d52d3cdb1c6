package connect

import (
	"errors"
	"fmt"
	"net/http"
)

// Default messages for the transport error taxonomy. Each classified
// error carries one of these unless the server supplied more detail.
const (
	msgAPIError     = "error while communicating with the Connect server"
	msgNotFound     = "resource not found"
	msgBadRequest   = "invalid request body or parameters"
	msgServerError  = "Connect server encountered an error, please try again"
	msgAccessDenied = "token invalid or access to vault not granted by token"
)

// APIError is the generic classification for a failed Connect call.
// The more specific error types below embed it.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("connect api error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("connect api error: %s", e.Message)
}

// NotFoundError reports a missing vault, item, field or section.
type NotFoundError struct {
	APIError
}

// AccessDeniedError reports an invalid token or a vault the token
// cannot access (HTTP 401 or 403).
type AccessDeniedError struct {
	APIError
}

// BadRequestError reports a request the server rejected as malformed
// (HTTP 400).
type BadRequestError struct {
	APIError
}

// ServerError reports a Connect-side failure (HTTP 5xx).
type ServerError struct {
	APIError
}

// NewAPIError builds a generic APIError, falling back to the default
// message when the server supplied none.
func NewAPIError(status int, message string) *APIError {
	if message == "" {
		message = msgAPIError
	}
	return &APIError{StatusCode: status, Message: message}
}

// NewNotFoundError builds a NotFoundError with an optional detail
// message.
func NewNotFoundError(message string) *NotFoundError {
	if message == "" {
		message = msgNotFound
	}
	return &NotFoundError{APIError{StatusCode: http.StatusNotFound, Message: message}}
}

// NewAccessDeniedError builds an AccessDeniedError with an optional
// detail message.
func NewAccessDeniedError(message string) *AccessDeniedError {
	if message == "" {
		message = msgAccessDenied
	}
	return &AccessDeniedError{APIError{StatusCode: http.StatusForbidden, Message: message}}
}

// ErrorFromStatus classifies an HTTP failure status into the error
// taxonomy. The message may be empty; the classified error then
// carries its default message.
func ErrorFromStatus(status int, message string) error {
	switch {
	case status >= 500:
		if message == "" {
			message = msgServerError
		}
		return &ServerError{APIError{StatusCode: status, Message: message}}
	case status == http.StatusNotFound:
		if message == "" {
			message = msgNotFound
		}
		return &NotFoundError{APIError{StatusCode: status, Message: message}}
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		if message == "" {
			message = msgAccessDenied
		}
		return &AccessDeniedError{APIError{StatusCode: status, Message: message}}
	case status == http.StatusBadRequest:
		if message == "" {
			message = msgBadRequest
		}
		return &BadRequestError{APIError{StatusCode: status, Message: message}}
	default:
		return NewAPIError(status, message)
	}
}

// IsNotFound reports whether err classifies as a missing resource.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsAccessDenied reports whether err classifies as an authorization
// failure.
func IsAccessDenied(err error) bool {
	var ad *AccessDeniedError
	return errors.As(err, &ad)
}

// IsBadRequest reports whether err classifies as a rejected request.
func IsBadRequest(err error) bool {
	var br *BadRequestError
	return errors.As(err, &br)
}
