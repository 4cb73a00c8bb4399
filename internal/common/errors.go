// Package common defines shared constants and sentinel errors used across
// client and server layers of the file ledger. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Lookup errors (missing file, permission or reward balance).
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// AuthFailure: the verified caller does not match the required identity.
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors (empty hash, malformed identifiers).
	ErrorIncorrectMetadata = errors.New("incorrect metadata")

	// Reward amount errors.
	ErrorInvalidAmount       = errors.New("amount must be positive")
	ErrorInsufficientBalance = errors.New("insufficient reward points")
	ErrorAmountOverflow      = errors.New("amount out of range")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
