package connect

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFromStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{
			name:   "404 is not found",
			status: http.StatusNotFound,
			check:  func(t *testing.T, err error) { assert.True(t, IsNotFound(err)) },
		},
		{
			name:   "401 is access denied",
			status: http.StatusUnauthorized,
			check:  func(t *testing.T, err error) { assert.True(t, IsAccessDenied(err)) },
		},
		{
			name:   "403 is access denied",
			status: http.StatusForbidden,
			check:  func(t *testing.T, err error) { assert.True(t, IsAccessDenied(err)) },
		},
		{
			name:   "400 is bad request",
			status: http.StatusBadRequest,
			check:  func(t *testing.T, err error) { assert.True(t, IsBadRequest(err)) },
		},
		{
			name:   "500 is a server error",
			status: http.StatusInternalServerError,
			check: func(t *testing.T, err error) {
				var se *ServerError
				assert.ErrorAs(t, err, &se)
			},
		},
		{
			name:   "503 is a server error",
			status: http.StatusServiceUnavailable,
			check: func(t *testing.T, err error) {
				var se *ServerError
				assert.ErrorAs(t, err, &se)
			},
		},
		{
			name:   "429 falls back to the generic error",
			status: http.StatusTooManyRequests,
			check: func(t *testing.T, err error) {
				assert.False(t, IsNotFound(err))
				assert.False(t, IsAccessDenied(err))
				assert.False(t, IsBadRequest(err))
				var ae *APIError
				assert.ErrorAs(t, err, &ae)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ErrorFromStatus(tt.status, "")
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestErrorFromStatusKeepsServerMessage(t *testing.T) {
	t.Parallel()

	err := ErrorFromStatus(http.StatusNotFound, "vault abc not found")
	assert.Contains(t, err.Error(), "vault abc not found")
	assert.Contains(t, err.Error(), "404")

	err = ErrorFromStatus(http.StatusNotFound, "")
	assert.Contains(t, err.Error(), msgNotFound, "empty message falls back to the default")
}

func TestClassifiersMatchWrappedErrors(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("looking up item: %w", NewNotFoundError(""))
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsAccessDenied(wrapped))
}

func TestAPIErrorMessage(t *testing.T) {
	t.Parallel()

	withStatus := NewAPIError(409, "conflict")
	assert.Equal(t, "connect api error (status 409): conflict", withStatus.Error())

	withoutStatus := NewAPIError(0, "ambiguous title")
	assert.Equal(t, "connect api error: ambiguous title", withoutStatus.Error())
}
