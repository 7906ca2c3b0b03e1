// Package common defines shared constants and sentinel errors used across
// the bucketlist server. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")
	ErrValidation = errors.New("validation error")

	// Account errors.
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Token errors. Expired and invalid tokens stay distinct: an expired
	// token asks for a new login, an invalid one is rejected as untrusted.
	ErrSigning      = errors.New("token signing error")
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")

	// Storage errors.
	ErrStorageCommit = errors.New("storage commit failed")
)
