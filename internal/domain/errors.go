package domain

import "errors"

// Client-correctable errors (400 class).
var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidRole        = errors.New("userType must be client or consultant")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMalformedRequest   = errors.New("malformed request")
)

// Authentication failure (401). The sub-reason never leaves the process.
var ErrUnauthenticated = errors.New("unauthenticated")

// Lookup errors.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProfileExists   = errors.New("profile already exists")
	ErrProfileNotFound = errors.New("client not found")
)

// Infrastructure errors (500 class).
var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrHashing            = errors.New("password hashing failed")
	ErrTokenIssue         = errors.New("token issuance failed")
)
