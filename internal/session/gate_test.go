package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/envisionar/portal/internal/clock"
	"github.com/envisionar/portal/internal/domain"
	"github.com/envisionar/portal/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfiles struct {
	profiles []domain.Profile
	err      error
}

func (f *fakeProfiles) FindProfilesByEmail(ctx context.Context, email string) ([]domain.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Profile
	for _, p := range f.profiles {
		if p.Email == email {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeAuth struct {
	password string
	err      error
	calls    int
}

func (f *fakeAuth) SignIn(ctx context.Context, email, password string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if password != f.password {
		return "", domain.ErrInvalidCredentials
	}
	return "token-" + email, nil
}

func (f *fakeAuth) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	return nil, errors.New("not used")
}

type recordingPublisher struct {
	mu   sync.Mutex
	msgs []pubsub.Message
}

func (r *recordingPublisher) Publish(ctx context.Context, msg pubsub.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	return nil
}

func (r *recordingPublisher) Close() error { return nil }

type recordingRecorder struct {
	outcomes []string
	reasons  []string
}

func (r *recordingRecorder) ObserveLogin(outcome, reason string) {
	r.outcomes = append(r.outcomes, outcome)
	r.reasons = append(r.reasons, reason)
}

var (
	ana = domain.Profile{ID: "1", Name: "Ana", Email: "ana@example.com", Church: "Central", Program: "Envisionar", Role: domain.RoleLeader}
	bia = domain.Profile{ID: "2", Name: "Bia", Email: "bia@example.com", Church: "Central", Program: "Envisionar", Role: "membro"}
)

func TestGate_Authenticate(t *testing.T) {
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		profiles    []domain.Profile
		email       string
		password    string
		wantErr     error
		wantDest    string
		wantSignIns int
		wantReason  string
	}{
		{
			name:        "leader goes to the pastor dashboard",
			profiles:    []domain.Profile{ana},
			email:       "ana@example.com",
			password:    "secret",
			wantDest:    PathLeaderDashboard,
			wantSignIns: 1,
		},
		{
			name:        "legacy member role goes to the member dashboard",
			profiles:    []domain.Profile{bia},
			email:       "bia@example.com",
			password:    "secret",
			wantDest:    PathMemberDashboard,
			wantSignIns: 1,
		},
		{
			name:        "no profile skips credential check",
			email:       "ghost@example.com",
			password:    "secret",
			wantErr:     domain.ErrNotFound,
			wantSignIns: 0,
			wantReason:  ReasonNotFound,
		},
		{
			name:        "duplicate profiles skip credential check",
			profiles:    []domain.Profile{ana, ana},
			email:       "ana@example.com",
			password:    "secret",
			wantErr:     domain.ErrAmbiguousRecord,
			wantSignIns: 0,
			wantReason:  ReasonAmbiguous,
		},
		{
			name:        "wrong password",
			profiles:    []domain.Profile{ana},
			email:       "ana@example.com",
			password:    "nope",
			wantErr:     domain.ErrInvalidCredentials,
			wantSignIns: 1,
			wantReason:  ReasonInvalidCredentials,
		},
		{
			name:        "unknown role is rejected before signing in",
			profiles:    []domain.Profile{{Name: "X", Email: "x@example.com", Role: "admin"}},
			email:       "x@example.com",
			password:    "secret",
			wantErr:     domain.ErrUnknownRole,
			wantSignIns: 0,
			wantReason:  ReasonUnknownRole,
		},
		{
			name:        "empty role is rejected before signing in",
			profiles:    []domain.Profile{{Name: "Y", Email: "y@example.com"}},
			email:       "y@example.com",
			password:    "secret",
			wantErr:     domain.ErrUnknownRole,
			wantSignIns: 0,
			wantReason:  ReasonUnknownRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &fakeAuth{password: "secret"}
			pub := &recordingPublisher{}
			rec := &recordingRecorder{}
			gate := NewGate(&fakeProfiles{profiles: tt.profiles}, auth,
				WithPublisher(pub), WithRecorder(rec), WithClock(clock.Fixed(now)))

			res, err := gate.Authenticate(context.Background(), tt.email, tt.password)

			assert.Equal(t, tt.wantSignIns, auth.calls)
			require.Len(t, pub.msgs, 1, "exactly one login event per attempt")
			assert.Equal(t, LoginEvent.Name(), pub.msgs[0].Topic)

			var attempt LoginAttempt
			require.NoError(t, json.Unmarshal(pub.msgs[0].Payload, &attempt))
			assert.True(t, now.Equal(attempt.At))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, res)
				assert.Equal(t, OutcomeFailure, attempt.Outcome)
				assert.Equal(t, tt.wantReason, attempt.Reason)
				assert.Equal(t, []string{tt.wantReason}, rec.reasons)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, res)
			assert.Equal(t, tt.wantDest, res.Destination)
			assert.Equal(t, "token-"+tt.email, res.Token)
			assert.Equal(t, OutcomeSuccess, attempt.Outcome)
			assert.Equal(t, []string{OutcomeSuccess}, rec.outcomes)
		})
	}
}

func TestGate_WelcomeMessage(t *testing.T) {
	gate := NewGate(&fakeProfiles{profiles: []domain.Profile{ana}}, &fakeAuth{password: "secret"})

	res, err := gate.Authenticate(context.Background(), "ana@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Bem-vindo, Ana – Central – Envisionar", res.Welcome)
	assert.Equal(t, domain.RoleLeader, res.Role)
}

func TestGate_BackendErrors(t *testing.T) {
	t.Run("profile lookup", func(t *testing.T) {
		boom := errors.New("connection refused")
		auth := &fakeAuth{}
		gate := NewGate(&fakeProfiles{err: boom}, auth)

		_, err := gate.Authenticate(context.Background(), "ana@example.com", "secret")
		assert.ErrorIs(t, err, boom)
		assert.Zero(t, auth.calls)
		assert.Equal(t, ReasonBackend, reasonFor(err))
	})

	t.Run("sign in transport failure is not a credential error", func(t *testing.T) {
		boom := errors.New("broken pipe")
		gate := NewGate(&fakeProfiles{profiles: []domain.Profile{ana}}, &fakeAuth{err: boom})

		_, err := gate.Authenticate(context.Background(), "ana@example.com", "secret")
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestDestination(t *testing.T) {
	dest, err := Destination(domain.RoleLeader)
	require.NoError(t, err)
	assert.Equal(t, "/dashboard-pastor", dest)

	dest, err = Destination(domain.RoleMember)
	require.NoError(t, err)
	assert.Equal(t, "/dashboard-membro", dest)

	_, err = Destination(domain.Role("visitor"))
	assert.ErrorIs(t, err, domain.ErrUnknownRole)
}
