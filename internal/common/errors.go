// Package common defines shared constants and sentinel errors used across
// Sellegate server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")
	ErrorValidation   = errors.New("validation error")

	// Registration conflicts.
	ErrorEmailTaken    = errors.New("email is already registered")
	ErrorUsernameTaken = errors.New("username is already taken")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// Item state errors.
	ErrorItemAlreadySold = errors.New("item is already sold")
	ErrorItemHidden      = errors.New("item is not visible")

	// Assessment state errors (terminal states are final).
	ErrorAssessmentResolved = errors.New("assessment is already resolved")
)
