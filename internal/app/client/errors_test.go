package client

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"subtracker/internal/domain/subscription"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "network", err: fmt.Errorf("%w: dial tcp: refused", ErrNetwork), want: "Cannot reach the server. Check your connection and try again."},
		{name: "session", err: ErrSessionExpired, want: "Your session has expired. Please log in again."},
		{name: "storage", err: localStorageErr(errors.New("disk full")), want: "Local storage is unavailable or full."},
		{name: "validation", err: fmt.Errorf("%w: missing required fields: price", subscription.ErrInvalidInput), want: "missing required fields: price"},
		{name: "api bad request", err: &APIError{Status: http.StatusBadRequest, Message: "User already exists"}, want: "User already exists"},
		{name: "api server error hides detail", err: &APIError{Status: http.StatusInternalServerError, Message: "pq: relation missing"}, want: "Something went wrong on the server. Please try again later."},
		{name: "unknown", err: errors.New("boom"), want: "Something went wrong. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestIsAuthFailure(t *testing.T) {
	assert.True(t, IsAuthFailure(&APIError{Status: http.StatusUnauthorized}))
	assert.True(t, IsAuthFailure(fmt.Errorf("list: %w", &APIError{Status: http.StatusForbidden})))
	assert.False(t, IsAuthFailure(&APIError{Status: http.StatusBadRequest}))
	assert.False(t, IsAuthFailure(ErrNetwork))
}
