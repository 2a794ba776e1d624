package apperrors

import (
	"errors"
)

var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")

	// Returned for unknown username and wrong password alike,
	// so callers can't probe which usernames exist
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Single error for malformed, tampered, expired and revoked tokens
	ErrInvalidToken = errors.New("token is invalid or expired")
	ErrMissingToken = errors.New("authorization token not provided")

	// Revocation ledger (or another auth dependency) could not be reached.
	// Must not be treated as "not revoked": the middleware fails closed
	ErrAuthUnavailable = errors.New("authorization backend unavailable")

	ErrContactNotFound = errors.New("contact not found")
)
