package github

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/custodia-labs/i18nscout/internal/core/domain"
)

// GitHub-specific errors.
var (
	// ErrConfigInvalid indicates the client configuration is unusable.
	ErrConfigInvalid = errors.New("github: invalid configuration")

	// ErrUnexpectedResponse indicates a response body could not be decoded.
	ErrUnexpectedResponse = errors.New("github: unexpected response")
)

// RateLimitError represents a rate limit that was not waited out.
type RateLimitError struct {
	ResetAt   time.Time
	RetryAt   time.Time
	Remaining int
	Limit     int
	Attempts  int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("github: rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

// Unwrap maps the error to the domain sentinel.
func (e *RateLimitError) Unwrap() error {
	return domain.ErrRateLimited
}

// APIError represents a non-success API response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// Is maps status codes to domain sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case domain.ErrRequestFailed:
		return true
	case domain.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case domain.ErrAuthInvalid:
		return e.StatusCode == http.StatusUnauthorized
	}
	return false
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}
	return false
}

// IsForbidden checks if the error indicates a forbidden resource.
func IsForbidden(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusForbidden
	}
	return false
}
