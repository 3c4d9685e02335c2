// Package audit writes login and dashboard events from the bus to the log.
package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/envisionar/portal/internal/dashboard"
	"github.com/envisionar/portal/internal/pubsub"
	"github.com/envisionar/portal/internal/session"
)

// Subscriber logs every session.login and dashboard.loaded event.
type Subscriber struct {
	subscriber pubsub.Subscriber
	logger     *slog.Logger
}

// NewSubscriber creates an audit subscriber. A nil logger means slog.Default().
func NewSubscriber(sub pubsub.Subscriber, logger *slog.Logger) *Subscriber {
	if logger == nil {
		logger = slog.Default()
	}
	return &Subscriber{subscriber: sub, logger: logger.With("component", "audit")}
}

// Start registers the handlers. They run until ctx is cancelled or the bus closes.
func (s *Subscriber) Start(ctx context.Context) error {
	slog.Info("Starting audit subscriber")

	if err := pubsub.Subscribe(ctx, s.subscriber, session.LoginEvent, s.handleLogin); err != nil {
		return fmt.Errorf("subscribe %s: %w", session.LoginEvent.Name(), err)
	}
	if err := pubsub.Subscribe(ctx, s.subscriber, dashboard.LoadedEvent, s.handleDashboard); err != nil {
		return fmt.Errorf("subscribe %s: %w", dashboard.LoadedEvent.Name(), err)
	}
	return nil
}

func (s *Subscriber) handleLogin(ctx context.Context, e session.LoginAttempt) error {
	level := slog.LevelInfo
	if e.Outcome != session.OutcomeSuccess {
		level = slog.LevelWarn
	}
	s.logger.Log(ctx, level, "Login attempt",
		"event", "audit_login",
		"email", e.Email,
		"outcome", e.Outcome,
		"reason", e.Reason,
		"role", e.Role,
		"at", e.At)
	return nil
}

func (s *Subscriber) handleDashboard(ctx context.Context, e dashboard.Loaded) error {
	level := slog.LevelInfo
	if e.Outcome != "success" {
		level = slog.LevelWarn
	}
	s.logger.Log(ctx, level, "Dashboard load",
		"event", "audit_dashboard",
		"email", e.Email,
		"kind", e.Kind,
		"outcome", e.Outcome,
		"failed_step", e.FailedStep,
		"duration_ms", e.DurationMS)
	return nil
}
