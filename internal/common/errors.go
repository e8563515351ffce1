// Package common defines shared constants and sentinel errors used across
// the Privafile server layers. Callers should use errors.Is to match these
// values; store and blob failures are wrapped around them with operation
// context where needed.
package common

import "errors"

var (
	// Catalog / storage-engine errors.
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidState      = errors.New("invalid upload state")
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrEmptyUpload       = errors.New("upload has no chunks")
	ErrMissingChunks     = errors.New("chunk sequence is missing or disordered")

	// Auth errors.
	ErrMissingCredential   = errors.New("missing credential")
	ErrMalformedCredential = errors.New("malformed credential")
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")

	// Identity errors.
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidUsername    = errors.New("invalid username")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Generic service errors.
	ErrInternal = errors.New("internal error")
)
