// Package session verifies login credentials and decides where a user goes next.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/envisionar/portal/internal/clock"
	"github.com/envisionar/portal/internal/domain"
	"github.com/envisionar/portal/internal/pubsub"
)

// LoginEvent is published once per authentication attempt.
var LoginEvent = pubsub.NewEvent[LoginAttempt]("session.login")

// LoginAttempt is the payload of LoginEvent.
type LoginAttempt struct {
	Email   string    `json:"email"`
	Outcome string    `json:"outcome"`
	Reason  string    `json:"reason,omitempty"`
	Role    string    `json:"role,omitempty"`
	At      time.Time `json:"at"`
}

// Outcomes and failure reasons reported in LoginAttempt and metrics.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"

	ReasonNotFound           = "not_found"
	ReasonAmbiguous          = "ambiguous"
	ReasonInvalidCredentials = "invalid_credentials"
	ReasonUnknownRole        = "unknown_role"
	ReasonBackend            = "backend_error"
)

// LoginRecorder receives one observation per attempt.
type LoginRecorder interface {
	ObserveLogin(outcome, reason string)
}

// Result is what a successful login produces.
type Result struct {
	Profile     domain.Profile
	Role        domain.Role
	Destination string
	Welcome     string
	Token       string
}

// Gate authenticates users against the backend.
type Gate struct {
	profiles  domain.ProfileStore
	auth      domain.Authenticator
	publisher pubsub.Publisher
	recorder  LoginRecorder
	clock     clock.Clock
}

// Option configures a Gate.
type Option func(*Gate)

// WithPublisher sets the bus login events are published to.
func WithPublisher(p pubsub.Publisher) Option {
	return func(g *Gate) { g.publisher = p }
}

// WithRecorder sets the metrics sink.
func WithRecorder(r LoginRecorder) Option {
	return func(g *Gate) { g.recorder = r }
}

// WithClock overrides the clock used to timestamp events.
func WithClock(c clock.Clock) Option {
	return func(g *Gate) { g.clock = c }
}

// NewGate creates a gate over the profile store and authenticator.
func NewGate(profiles domain.ProfileStore, auth domain.Authenticator, opts ...Option) *Gate {
	g := &Gate{
		profiles:  profiles,
		auth:      auth,
		publisher: pubsub.Discard,
		clock:     clock.System{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Authenticate resolves the profile for email, verifies the credentials and
// returns the destination for the profile's role.
//
// The profile must match exactly one record; with zero or several matches the
// credentials are never sent to the backend.
func (g *Gate) Authenticate(ctx context.Context, email, password string) (*Result, error) {
	res, err := g.authenticate(ctx, email, password)

	attempt := LoginAttempt{Email: email, Outcome: OutcomeSuccess, At: g.clock.Now()}
	if err != nil {
		attempt.Outcome = OutcomeFailure
		attempt.Reason = reasonFor(err)
		slog.WarnContext(ctx, "Login failed", "event", "login_failed", "email", email, "reason", attempt.Reason, "error", err)
	} else {
		attempt.Role = res.Role.String()
		slog.InfoContext(ctx, "Login succeeded", "event", "login_success", "email", email, "role", attempt.Role)
	}

	if g.recorder != nil {
		g.recorder.ObserveLogin(attempt.Outcome, attempt.Reason)
	}
	if pubErr := pubsub.Publish(ctx, g.publisher, LoginEvent, email, attempt); pubErr != nil {
		slog.ErrorContext(ctx, "Failed to publish login event", "event", "login_publish_failure", "error", pubErr)
	}

	if err != nil {
		return nil, err
	}
	return res, nil
}

func (g *Gate) authenticate(ctx context.Context, email, password string) (*Result, error) {
	profiles, err := g.profiles.FindProfilesByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("looking up profile: %w", err)
	}
	switch len(profiles) {
	case 0:
		return nil, domain.ErrNotFound
	case 1:
	default:
		return nil, fmt.Errorf("%w: %d profiles for %s", domain.ErrAmbiguousRecord, len(profiles), email)
	}
	profile := profiles[0]

	// A profile with no dashboard never reaches the auth service, so no
	// token is issued that the caller would have to discard.
	role, err := domain.ParseRole(string(profile.Role))
	if err != nil {
		return nil, err
	}
	dest, err := Destination(role)
	if err != nil {
		return nil, err
	}

	token, err := g.auth.SignIn(ctx, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return nil, err
		}
		return nil, fmt.Errorf("signing in: %w", err)
	}

	return &Result{
		Profile:     profile,
		Role:        role,
		Destination: dest,
		Welcome:     WelcomeMessage(profile),
		Token:       token,
	}, nil
}

// WelcomeMessage is the greeting shown after a successful login.
func WelcomeMessage(p domain.Profile) string {
	return fmt.Sprintf("Bem-vindo, %s – %s – %s", p.Name, p.Church, p.Program)
}

func reasonFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return ReasonNotFound
	case errors.Is(err, domain.ErrAmbiguousRecord):
		return ReasonAmbiguous
	case errors.Is(err, domain.ErrInvalidCredentials):
		return ReasonInvalidCredentials
	case errors.Is(err, domain.ErrUnknownRole):
		return ReasonUnknownRole
	default:
		return ReasonBackend
	}
}
