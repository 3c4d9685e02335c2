package database

import (
	"context"
	"fmt"

	"github.com/envisionar/portal/internal/config"
	"github.com/envisionar/portal/internal/domain"
)

// SurrealBackend bundles the SurrealDB stores into one domain.Backend.
type SurrealBackend struct {
	*ProfileStore
	*ProgramStore
	*RecordAuthenticator

	conn *Connection
}

var _ domain.Backend = (*SurrealBackend)(nil)

// NewSurrealBackend connects to SurrealDB and builds every store.
func NewSurrealBackend(ctx context.Context, cfg config.Provider) (*SurrealBackend, error) {
	conn := NewConnection(cfg)
	if err := conn.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect surrealdb: %w", err)
	}
	conn.StartMonitoring()

	profiles, err := NewProfileStore(conn, cfg)
	if err != nil {
		_ = conn.Close(ctx)
		return nil, err
	}
	program, err := NewProgramStore(conn, cfg)
	if err != nil {
		_ = conn.Close(ctx)
		return nil, err
	}

	return &SurrealBackend{
		ProfileStore:        profiles,
		ProgramStore:        program,
		RecordAuthenticator: NewRecordAuthenticator(cfg),
		conn:                conn,
	}, nil
}

// Healthy reports whether the service connection passed its last check.
func (b *SurrealBackend) Healthy() bool {
	return b.conn.IsHealthy()
}

// Close releases the service connection.
func (b *SurrealBackend) Close(ctx context.Context) error {
	return b.conn.Close(ctx)
}
