package database

import (
	"context"

	"github.com/envisionar/portal/internal/config"
	"github.com/envisionar/portal/internal/domain"
)

// ProfileStore implements domain.ProfileStore on the usuarios table.
type ProfileStore struct {
	client *Client[profileRow]
}

// NewProfileStore creates a profile store bound to conn.
func NewProfileStore(conn *Connection, cfg config.Provider, opts ...ClientOption[profileRow]) (*ProfileStore, error) {
	client, err := NewClient(conn, cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &ProfileStore{client: client}, nil
}

// FindProfilesByEmail returns all profiles with exactly this email. Callers
// decide what zero or several matches mean.
func (s *ProfileStore) FindProfilesByEmail(ctx context.Context, email string) ([]domain.Profile, error) {
	query := "SELECT * FROM type::table($table) WHERE email = $email"
	rows, err := s.client.Query(ctx, query, map[string]any{"table": tableProfiles, "email": email})
	if err != nil {
		return nil, WrapError(err, "find profiles by email")
	}

	profiles := make([]domain.Profile, 0, len(rows))
	for _, r := range rows {
		profiles = append(profiles, r.toDomain())
	}
	return profiles, nil
}
