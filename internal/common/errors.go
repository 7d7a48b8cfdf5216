// Package common defines shared constants and sentinel errors used across
// the CarWise data layer. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("conflict")

	// Authorization outcomes. ErrPermissionDenied is the expected,
	// recoverable denial of a write. ErrorInvariantViolation signals a
	// predicate/hook mismatch inside the engine itself and is surfaced
	// as an internal error, never as a normal denial.
	ErrPermissionDenied     = errors.New("permission denied")
	ErrorInvariantViolation = errors.New("invariant violation")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
