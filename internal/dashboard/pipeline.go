package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/envisionar/portal/internal/domain"
	"github.com/envisionar/portal/internal/retry"
)

// Step names, in pipeline order.
const (
	StepProfile          = "profile"
	StepGroups           = "groups"
	StepParticipantCount = "participant-count"
	StepCurrentCycle     = "current-cycle"
	StepNextEvent        = "next-event"
	StepMonthEvents      = "month-events"
	StepParticipants     = "participants"
)

// LoadError reports which step stopped the pipeline. It matches
// domain.ErrLoadFailure, and domain.ErrProfileMissing when the profile was absent.
type LoadError struct {
	Step string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("dashboard step %q failed: %v", e.Step, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is makes every LoadError match domain.ErrLoadFailure.
func (e *LoadError) Is(target error) bool {
	return target == domain.ErrLoadFailure
}

// RetryPolicy controls how often a single step is attempted.
type RetryPolicy struct {
	Attempts  int
	BaseDelay time.Duration
}

// NoRetry runs every step once.
var NoRetry = RetryPolicy{Attempts: 1}

func (p RetryPolicy) backoff() *retry.Backoff {
	if p.Attempts <= 1 {
		return retry.Once()
	}
	return &retry.Backoff{
		Attempts:   p.Attempts,
		BaseDelay:  p.BaseDelay,
		MaxDelay:   5 * time.Second,
		Multiplier: 2.0,
	}
}

// state is the scratch space steps write into. It becomes the view model
// only when the whole pipeline succeeds.
type state struct {
	email string
	now   time.Time
	vm    ViewModel
}

// step is one named fetch in the pipeline.
type step struct {
	name string
	run  func(ctx context.Context, st *state) error
}

// StepObserver receives timings and the final outcome of each load.
type StepObserver interface {
	ObserveStep(step string, d time.Duration)
	ObserveDashboard(outcome, step string)
}

// runPipeline executes steps in order. The context is checked before each
// step; a cancelled request never gets a view model back.
func runPipeline(ctx context.Context, steps []step, st *state, policy RetryPolicy, obs StepObserver) error {
	backoff := policy.backoff()
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("dashboard load cancelled before %q: %w", s.name, err)
		}

		started := time.Now()
		err := backoff.Do(ctx, func(ctx context.Context) error {
			err := s.run(ctx, st)
			if errors.Is(err, domain.ErrProfileMissing) {
				// Retrying cannot make a missing profile appear.
				return retry.Permanent(err)
			}
			return err
		})
		if obs != nil {
			obs.ObserveStep(s.name, time.Since(started))
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
				return fmt.Errorf("dashboard load cancelled during %q: %w", s.name, err)
			}
			return &LoadError{Step: s.name, Err: err}
		}
	}
	return nil
}
