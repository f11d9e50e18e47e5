package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage_Precedence(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"detail wins", &APIError{Status: 500, Detail: "database is on fire", Reason: "ignored"}, "database is on fire"},
		{"error field next", &APIError{Status: 500, Reason: "bad thing"}, "bad thing"},
		{"401 canned", &APIError{Status: 401}, msgUnauthorized},
		{"403 canned", &APIError{Status: 403}, msgForbidden},
		{"404 canned", &APIError{Status: 404}, msgNotFound},
		{"429 canned", &APIError{Status: 429}, msgRateLimited},
		{"500 canned", &APIError{Status: 500}, msgServerError},
		{"503 canned", &APIError{Status: 503}, msgServerError},
		{"unmapped 4xx", &APIError{Status: 422}, msgGeneric},
		{"network", &NetworkError{Err: errors.New("connection refused")}, msgNetwork},
		{"expired latch", ErrSessionExpired, msgUnauthorized},
		{"wrapped api error", fmt.Errorf("start session: %w", &APIError{Status: 404}), msgNotFound},
		{"unknown error", errors.New("whatever"), msgGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorMessage(tt.err))
		})
	}
}

func TestNewAPIError_ParsesBody(t *testing.T) {
	e := newAPIError(404, []byte(`{"detail":"Session not found"}`))
	assert.Equal(t, 404, e.Status)
	assert.Equal(t, "Session not found", e.Detail)

	e = newAPIError(429, []byte(`{"error":"rate limited"}`))
	assert.Equal(t, "rate limited", e.Reason)

	// Structured FastAPI validation detail doesn't decode to a string;
	// that's fine, the canned message takes over.
	e = newAPIError(422, []byte(`{"detail":[{"loc":["body","topic"],"msg":"field required"}]}`))
	assert.Empty(t, e.Detail)
	assert.Equal(t, msgGeneric, ErrorMessage(e))
}

func TestAPIError_Error(t *testing.T) {
	assert.Equal(t, "api: 404: gone", (&APIError{Status: 404, Detail: "gone"}).Error())
	assert.Equal(t, "api: status 500", (&APIError{Status: 500}).Error())
}
