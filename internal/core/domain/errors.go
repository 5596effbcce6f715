package domain

import "errors"

// Domain errors represent scan failures independent of the platform adapter.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates a requested user, repository or file does not exist.
	ErrNotFound = errors.New("not found")

	// ErrRequestFailed indicates the platform answered with a non-success status.
	ErrRequestFailed = errors.New("request failed")

	// ErrRateLimited indicates the API rate limit could not be waited out.
	ErrRateLimited = errors.New("rate limited")

	// Authentication Errors.

	// ErrAuthRequired indicates the platform requires a credential but none is configured.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthInvalid indicates the credential was rejected.
	ErrAuthInvalid = errors.New("authentication invalid")
)
