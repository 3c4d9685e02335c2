package domain

import "errors"

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for the login and dashboard flows.
var (
	// ErrNotFound is returned when no profile matches the submitted email.
	ErrNotFound = errors.New("requested resource not found")

	// ErrAmbiguousRecord is returned when more than one profile shares an email.
	ErrAmbiguousRecord = errors.New("more than one record matches")

	// ErrInvalidCredentials is returned when the backend rejects a sign-in.
	ErrInvalidCredentials = errors.New("invalid credentials provided")

	// ErrProfileMissing is returned when an authenticated identity has no profile row.
	ErrProfileMissing = errors.New("authenticated user has no profile")

	// ErrLoadFailure wraps any query failure while loading the dashboard.
	ErrLoadFailure = errors.New("failed to load dashboard data")

	// ErrUnknownRole is returned when a profile carries a role with no destination.
	ErrUnknownRole = errors.New("unknown profile role")
)
