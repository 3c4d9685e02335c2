// Package memory is an in-process implementation of the hosted backend,
// loaded from a YAML seed file. It serves local development and tests.
package memory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/envisionar/portal/internal/domain"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"golang.org/x/crypto/bcrypt"
)

// Backend implements domain.Backend over in-memory data.
type Backend struct {
	mu sync.RWMutex

	hashes       map[string][]byte
	tokens       map[string]string
	profiles     []domain.Profile
	groups       []SeedGroup
	participants []SeedParticipant
	cycles       []SeedCycle
	events       []SeedEvent
	closed       bool
}

var _ domain.Backend = (*Backend)(nil)

// Load reads the seed file at path and builds a backend from it.
func Load(fs afero.Fs, path string) (*Backend, error) {
	seed, err := ReadSeed(fs, path)
	if err != nil {
		return nil, err
	}
	b, err := New(seed)
	if err != nil {
		return nil, err
	}
	slog.Info("Loaded in-memory backend", "event", "memory_backend_loaded", "seed_file", path,
		"profiles", len(b.profiles), "groups", len(b.groups), "events", len(b.events))
	return b, nil
}

// New builds a backend from an already decoded seed. Plain passwords are
// hashed with bcrypt. The caller's seed is left untouched.
func New(seed *Seed) (*Backend, error) {
	if seed == nil {
		seed = &Seed{}
	}
	seed = seed.clone()
	if err := seed.normalize(); err != nil {
		return nil, err
	}

	b := &Backend{
		hashes:       make(map[string][]byte, len(seed.Accounts)),
		tokens:       make(map[string]string),
		profiles:     seed.Profiles,
		groups:       seed.Groups,
		participants: seed.Participants,
		cycles:       seed.Cycles,
		events:       seed.Events,
	}
	for _, acc := range seed.Accounts {
		hash := []byte(acc.PasswordHash)
		if len(hash) == 0 {
			if acc.Password == "" {
				return nil, fmt.Errorf("account %s has no password", acc.Email)
			}
			var err error
			hash, err = bcrypt.GenerateFromPassword([]byte(acc.Password), bcrypt.DefaultCost)
			if err != nil {
				return nil, fmt.Errorf("hash password for %s: %w", acc.Email, err)
			}
		}
		b.hashes[acc.Email] = hash
	}

	sort.SliceStable(b.events, func(i, j int) bool { return b.events[i].Date.Before(b.events[j].Date) })
	return b, nil
}

// FindProfilesByEmail returns copies of every profile with this exact email.
func (b *Backend) FindProfilesByEmail(ctx context.Context, email string) ([]domain.Profile, error) {
	if err := b.check(ctx); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []domain.Profile
	for _, p := range b.profiles {
		if p.Email == email {
			out = append(out, p)
		}
	}
	return out, nil
}

// SignIn checks the password against the stored hash and issues a token.
func (b *Backend) SignIn(ctx context.Context, email, password string) (string, error) {
	if err := b.check(ctx); err != nil {
		return "", err
	}
	b.mu.RLock()
	hash, ok := b.hashes[email]
	b.mu.RUnlock()
	if !ok {
		return "", domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	token := uuid.NewString()
	b.mu.Lock()
	b.tokens[token] = email
	b.mu.Unlock()
	return token, nil
}

// Authenticate resolves a token issued by SignIn.
func (b *Backend) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	if err := b.check(ctx); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	email, ok := b.tokens[token]
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	return &domain.Identity{Email: email}, nil
}

// ListGroups returns every group with its leader's name resolved.
func (b *Backend) ListGroups(ctx context.Context) ([]domain.Group, error) {
	if err := b.check(ctx); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]domain.Group, 0, len(b.groups))
	for _, g := range b.groups {
		out = append(out, b.group(g))
	}
	return out, nil
}

// CountParticipants returns the number of participant rows.
func (b *Backend) CountParticipants(ctx context.Context) (int, error) {
	if err := b.check(ctx); err != nil {
		return 0, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.participants), nil
}

// LatestCycle returns the cycle with the latest start date, or nil.
func (b *Backend) LatestCycle(ctx context.Context) (*domain.Cycle, error) {
	if err := b.check(ctx); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	var latest *SeedCycle
	for i := range b.cycles {
		if latest == nil || b.cycles[i].StartDate.After(latest.StartDate) {
			latest = &b.cycles[i]
		}
	}
	if latest == nil {
		return nil, nil
	}
	return &domain.Cycle{Number: latest.Number, Total: latest.Total, StartDate: latest.StartDate}, nil
}

// NextEvent returns the earliest event dated at or after from, or nil.
func (b *Backend) NextEvent(ctx context.Context, from time.Time) (*domain.Event, error) {
	if err := b.check(ctx); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	// events are kept sorted by date
	for _, e := range b.events {
		if !e.Date.Before(from) {
			ev := toEvent(e)
			return &ev, nil
		}
	}
	return nil, nil
}

// EventsBetween returns events dated within [from, to].
func (b *Backend) EventsBetween(ctx context.Context, from, to time.Time) ([]domain.Event, error) {
	if err := b.check(ctx); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []domain.Event
	for _, e := range b.events {
		if e.Date.Before(from) || e.Date.After(to) {
			continue
		}
		out = append(out, toEvent(e))
	}
	return out, nil
}

// ListParticipants returns every participant with profile and group joined.
// Dangling references leave the joined field nil.
func (b *Backend) ListParticipants(ctx context.Context) ([]domain.Participant, error) {
	if err := b.check(ctx); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]domain.Participant, 0, len(b.participants))
	for _, sp := range b.participants {
		p := domain.Participant{
			ID:        sp.ID,
			ProfileID: sp.ProfileID,
			GroupID:   sp.GroupID,
			Email:     sp.Email,
			Phone:     sp.Phone,
		}
		if prof := b.profileByID(sp.ProfileID); prof != nil {
			cp := *prof
			p.Profile = &cp
		}
		for _, g := range b.groups {
			if g.ID == sp.GroupID {
				grp := b.group(g)
				p.Group = &grp
				break
			}
		}
		out = append(out, p)
	}
	return out, nil
}

// Close marks the backend closed; later calls fail.
func (b *Backend) Close(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

// ErrClosed is returned by every call made after Close.
var ErrClosed = errors.New("memory backend closed")

func (b *Backend) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrClosed
	}
	return nil
}

func (b *Backend) group(g SeedGroup) domain.Group {
	out := domain.Group{
		ID:          g.ID,
		Name:        g.Name,
		LeaderID:    g.LeaderID,
		MemberCount: g.MemberCount,
		NextMeeting: g.NextMeeting,
		Status:      g.Status,
	}
	if leader := b.profileByID(g.LeaderID); leader != nil {
		out.LeaderName = leader.Name
	}
	return out
}

func (b *Backend) profileByID(id string) *domain.Profile {
	if id == "" {
		return nil
	}
	for i := range b.profiles {
		if b.profiles[i].ID == id {
			return &b.profiles[i]
		}
	}
	return nil
}

func toEvent(e SeedEvent) domain.Event {
	return domain.Event{
		ID:          e.ID,
		Title:       e.Title,
		Date:        e.Date,
		Time:        e.Time,
		Location:    e.Location,
		Description: e.Description,
	}
}
