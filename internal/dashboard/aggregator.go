// Package dashboard loads and shapes the data shown on the dashboards.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/envisionar/portal/internal/clock"
	"github.com/envisionar/portal/internal/domain"
	"github.com/envisionar/portal/internal/pubsub"
	"github.com/envisionar/portal/internal/retry"
)

// LoadedEvent is published once per Load, successful or not.
var LoadedEvent = pubsub.NewEvent[Loaded]("dashboard.loaded")

// Loaded is the payload of LoadedEvent.
type Loaded struct {
	Email      string    `json:"email"`
	Kind       string    `json:"kind"`
	Outcome    string    `json:"outcome"`
	FailedStep string    `json:"failed_step,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	At         time.Time `json:"at"`
}

// Dashboard kinds.
const (
	KindLeader = "leader"
	KindMember = "member"
)

// Aggregator runs the dashboard pipeline against the backend.
type Aggregator struct {
	profiles  domain.ProfileStore
	program   domain.ProgramStore
	clock     clock.Clock
	policy    RetryPolicy
	observer  StepObserver
	publisher pubsub.Publisher
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithClock sets the source of "now".
func WithClock(c clock.Clock) Option { return func(a *Aggregator) { a.clock = c } }

// WithRetryPolicy sets the per-step retry policy.
func WithRetryPolicy(p RetryPolicy) Option { return func(a *Aggregator) { a.policy = p } }

// WithObserver sets the metrics sink.
func WithObserver(o StepObserver) Option { return func(a *Aggregator) { a.observer = o } }

// WithPublisher sets the bus load events go to.
func WithPublisher(p pubsub.Publisher) Option { return func(a *Aggregator) { a.publisher = p } }

// NewAggregator creates an aggregator. Without options it uses the system
// clock and runs each step once.
func NewAggregator(profiles domain.ProfileStore, program domain.ProgramStore, opts ...Option) *Aggregator {
	a := &Aggregator{
		profiles:  profiles,
		program:   program,
		clock:     clock.System{},
		policy:    NoRetry,
		publisher: pubsub.Discard,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Load builds the leader dashboard for email. On any failure it returns a
// nil view model; the error is a *LoadError unless the context was cancelled.
func (a *Aggregator) Load(ctx context.Context, email string) (*ViewModel, error) {
	return a.load(ctx, email, KindLeader, a.leaderSteps())
}

// LoadMember builds the smaller member dashboard, which has no group or
// participant directory.
func (a *Aggregator) LoadMember(ctx context.Context, email string) (*ViewModel, error) {
	return a.load(ctx, email, KindMember, a.memberSteps())
}

// Profile resolves the single profile for email and fetches nothing else.
// It fails the same way the profile step of Load does.
func (a *Aggregator) Profile(ctx context.Context, email string) (*domain.Profile, error) {
	st := &state{email: email, now: a.clock.Now()}
	if err := runPipeline(ctx, []step{{StepProfile, a.fetchProfile}}, st, a.policy, nil); err != nil {
		return nil, err
	}
	profile := st.vm.Profile
	return &profile, nil
}

func (a *Aggregator) load(ctx context.Context, email, kind string, steps []step) (*ViewModel, error) {
	started := time.Now()
	st := &state{email: email, now: a.clock.Now()}

	err := runPipeline(ctx, steps, st, a.policy, a.observer)

	loaded := Loaded{Email: email, Kind: kind, Outcome: "success", At: st.now}
	if err != nil {
		loaded.Outcome = "failure"
		var le *LoadError
		if errors.As(err, &le) {
			loaded.FailedStep = le.Step
		}
		slog.ErrorContext(ctx, "Dashboard load failed", "event", "dashboard_step_failed",
			"email", email, "kind", kind, "step", loaded.FailedStep, "error", err)
	} else {
		slog.DebugContext(ctx, "Dashboard loaded", "event", "dashboard_loaded", "email", email, "kind", kind)
	}
	loaded.DurationMS = time.Since(started).Milliseconds()

	if a.observer != nil {
		a.observer.ObserveDashboard(loaded.Outcome, loaded.FailedStep)
	}
	if pubErr := pubsub.Publish(ctx, a.publisher, LoadedEvent, email, loaded); pubErr != nil {
		slog.ErrorContext(ctx, "Failed to publish dashboard event", "event", "dashboard_publish_failure", "error", pubErr)
	}

	if err != nil {
		return nil, err
	}
	vm := st.vm
	vm.Now = st.now
	vm.Calendar = BuildCalendar(st.now.Year(), st.now.Month(), vm.MonthEvents, st.now)
	return &vm, nil
}

func (a *Aggregator) leaderSteps() []step {
	return []step{
		{StepProfile, a.fetchProfile},
		{StepGroups, a.fetchGroups},
		{StepParticipantCount, a.fetchParticipantCount},
		{StepCurrentCycle, a.fetchCurrentCycle},
		{StepNextEvent, a.fetchNextEvent},
		{StepMonthEvents, a.fetchMonthEvents},
		{StepParticipants, a.fetchParticipants},
	}
}

func (a *Aggregator) memberSteps() []step {
	return []step{
		{StepProfile, a.fetchProfile},
		{StepCurrentCycle, a.fetchCurrentCycle},
		{StepNextEvent, a.fetchNextEvent},
		{StepMonthEvents, a.fetchMonthEvents},
	}
}

func (a *Aggregator) fetchProfile(ctx context.Context, st *state) error {
	profiles, err := a.profiles.FindProfilesByEmail(ctx, st.email)
	if err != nil {
		return err
	}
	switch len(profiles) {
	case 0:
		return domain.ErrProfileMissing
	case 1:
		st.vm.Profile = profiles[0]
		return nil
	default:
		return retry.Permanent(fmt.Errorf("%w: %d profiles for %s", domain.ErrAmbiguousRecord, len(profiles), st.email))
	}
}

func (a *Aggregator) fetchGroups(ctx context.Context, st *state) error {
	groups, err := a.program.ListGroups(ctx)
	if err != nil {
		return err
	}
	st.vm.Groups = groups
	return nil
}

func (a *Aggregator) fetchParticipantCount(ctx context.Context, st *state) error {
	n, err := a.program.CountParticipants(ctx)
	if err != nil {
		return err
	}
	st.vm.ParticipantCount = n
	return nil
}

func (a *Aggregator) fetchCurrentCycle(ctx context.Context, st *state) error {
	cycle, err := a.program.LatestCycle(ctx)
	if err != nil {
		return err
	}
	if cycle != nil {
		st.vm.Cycle = *cycle
	}
	return nil
}

func (a *Aggregator) fetchNextEvent(ctx context.Context, st *state) error {
	event, err := a.program.NextEvent(ctx, st.now)
	if err != nil {
		return err
	}
	st.vm.NextEvent = event
	return nil
}

func (a *Aggregator) fetchMonthEvents(ctx context.Context, st *state) error {
	from, to := MonthBounds(st.now)
	events, err := a.program.EventsBetween(ctx, from, to)
	if err != nil {
		return err
	}
	st.vm.MonthEvents = events
	return nil
}

func (a *Aggregator) fetchParticipants(ctx context.Context, st *state) error {
	participants, err := a.program.ListParticipants(ctx)
	if err != nil {
		return err
	}
	st.vm.Participants = participants
	return nil
}
