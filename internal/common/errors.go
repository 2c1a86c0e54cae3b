// Package common defines shared constants and sentinel errors used across
// client and server layers of AuctionHub. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors. The specific variants all wrap ErrValidation so the
	// boundary can match the family with a single errors.Is check.
	ErrValidation       = errors.New("validation error")
	ErrMissingFields    = fmt.Errorf("%w: missing required fields", ErrValidation)
	ErrPasswordTooShort = fmt.Errorf("%w: password too short", ErrValidation)
	ErrUsernameTooShort = fmt.Errorf("%w: username too short", ErrValidation)
	ErrInvalidEmail     = fmt.Errorf("%w: invalid email address", ErrValidation)

	// Registration conflicts. Distinct values so the caller can surface a
	// precise message for each field.
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
