package domain

import (
	"context"
	"time"
)

// ProfileStore looks up application profiles.
type ProfileStore interface {
	// FindProfilesByEmail returns every profile whose email matches exactly.
	FindProfilesByEmail(ctx context.Context, email string) ([]Profile, error)
}

// Authenticator verifies credentials against the external auth service.
type Authenticator interface {
	// SignIn checks the credentials and returns a session token.
	// A rejected credential pair yields ErrInvalidCredentials.
	SignIn(ctx context.Context, email, password string) (string, error)

	// Authenticate resolves a session token back to its identity.
	Authenticate(ctx context.Context, token string) (*Identity, error)
}

// ProgramStore holds the read queries the dashboard needs.
type ProgramStore interface {
	ListGroups(ctx context.Context) ([]Group, error)
	CountParticipants(ctx context.Context) (int, error)

	// LatestCycle returns the most recently started cycle, or nil when there is none.
	LatestCycle(ctx context.Context) (*Cycle, error)

	// NextEvent returns the earliest event dated at or after from, or nil.
	NextEvent(ctx context.Context, from time.Time) (*Event, error)

	// EventsBetween returns events dated in [from, to], both ends inclusive.
	EventsBetween(ctx context.Context, from, to time.Time) ([]Event, error)

	ListParticipants(ctx context.Context) ([]Participant, error)
}

// Backend is the full contract of the hosted data and auth service.
type Backend interface {
	ProfileStore
	Authenticator
	ProgramStore

	Close(ctx context.Context) error
}
