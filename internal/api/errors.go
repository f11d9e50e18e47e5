package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is an HTTP error response received from the server.
type APIError struct {
	Status int
	Detail string // backend "detail" field, when present
	Reason string // backend "error" field, when present
}

func (e *APIError) Error() string {
	switch {
	case e.Detail != "":
		return fmt.Sprintf("api: %d: %s", e.Status, e.Detail)
	case e.Reason != "":
		return fmt.Sprintf("api: %d: %s", e.Status, e.Reason)
	default:
		return fmt.Sprintf("api: status %d", e.Status)
	}
}

// NetworkError wraps a transport failure where no HTTP response was
// received, after the retry budget is exhausted.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "api: network error: " + e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }

// ErrSessionExpired is returned for requests issued after a 401 has been
// observed and before re-authentication. Such requests fail fast instead
// of hitting the server with a token known to be dead.
var ErrSessionExpired = errors.New("api: session expired")

func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Detail string `json:"detail"`
		Reason string `json:"error"`
	}
	// Best effort; FastAPI validation errors carry a structured detail
	// field that won't decode into a string, and that's fine.
	_ = json.Unmarshal(body, &payload)
	return &APIError{Status: status, Detail: payload.Detail, Reason: payload.Reason}
}

// Canned user-facing messages, by failure class.
const (
	msgUnauthorized = "Your session has expired. Please log in again."
	msgForbidden    = "You don't have permission to do that."
	msgNotFound     = "The requested resource was not found."
	msgRateLimited  = "Too many requests. Please wait a moment before trying again."
	msgServerError  = "The server encountered an error. Please try again later."
	msgNetwork      = "Unable to reach the server. Check your connection and try again."
	msgGeneric      = "Something went wrong. Please try again."
)

// ErrorMessage maps a failure to a user-facing string. Precedence: backend
// detail field, backend error field, status-specific message, network
// message, generic fallback.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		if apiErr.Reason != "" {
			return apiErr.Reason
		}
		switch {
		case apiErr.Status == http.StatusUnauthorized:
			return msgUnauthorized
		case apiErr.Status == http.StatusForbidden:
			return msgForbidden
		case apiErr.Status == http.StatusNotFound:
			return msgNotFound
		case apiErr.Status == http.StatusTooManyRequests:
			return msgRateLimited
		case apiErr.Status >= 500:
			return msgServerError
		}
		return msgGeneric
	}

	if errors.Is(err, ErrSessionExpired) {
		return msgUnauthorized
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return msgNetwork
	}

	return msgGeneric
}
