package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"subtracker/internal/domain/subscription"
)

var (
	ErrNetwork          = errors.New("server unreachable")
	ErrSessionExpired   = errors.New("session expired")
	ErrLocalStorage     = errors.New("local storage unavailable")
	ErrNotAuthenticated = errors.New("not authenticated")
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.Status)
	}

	return fmt.Sprintf("server returned status %d: %s", e.Status, e.Message)
}

// IsAuthFailure reports whether the server rejected the caller's token.
func IsAuthFailure(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}

	return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
}

func localStorageErr(err error) error {
	return fmt.Errorf("%w: %v", ErrLocalStorage, err)
}

// UserMessage turns err into something safe to show. Internal detail is never included.
func UserMessage(err error) string {
	var apiErr *APIError

	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrSessionExpired):
		return "Your session has expired. Please log in again."
	case errors.Is(err, ErrNetwork):
		return "Cannot reach the server. Check your connection and try again."
	case errors.Is(err, ErrLocalStorage):
		return "Local storage is unavailable or full."
	case errors.Is(err, ErrNotAuthenticated):
		return "Please log in or continue as a guest."
	case errors.Is(err, subscription.ErrNotFound):
		return "Subscription not found."
	case errors.Is(err, subscription.ErrInvalidInput):
		return strings.TrimPrefix(err.Error(), subscription.ErrInvalidInput.Error()+": ")
	case errors.As(err, &apiErr):
		switch {
		case apiErr.Status == http.StatusNotFound:
			return "Subscription not found."
		case apiErr.Status >= http.StatusInternalServerError || apiErr.Message == "":
			return "Something went wrong on the server. Please try again later."
		default:
			return apiErr.Message
		}
	default:
		return "Something went wrong. Please try again."
	}
}
