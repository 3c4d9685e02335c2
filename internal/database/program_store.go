package database

import (
	"context"
	"time"

	"github.com/envisionar/portal/internal/config"
	"github.com/envisionar/portal/internal/domain"
)

const (
	queryGroups = `SELECT *, lider.nome AS lider_nome FROM type::table($table)`

	queryParticipantCount = `SELECT count() AS total FROM type::table($table) GROUP ALL`

	queryLatestCycle = `SELECT numero, total_ciclos, data_inicio FROM type::table($table)
		ORDER BY data_inicio DESC LIMIT 1`

	queryNextEvent = `SELECT * FROM type::table($table) WHERE data >= $from ORDER BY data ASC LIMIT 1`

	queryEventsBetween = `SELECT * FROM type::table($table) WHERE data >= $from AND data <= $to ORDER BY data ASC`

	queryParticipants = `SELECT *, usuario_id.* AS usuario, grupo_id.* AS grupo FROM type::table($table)`
)

// ProgramStore implements domain.ProgramStore with one typed client per row shape.
type ProgramStore struct {
	groups       *Client[groupRow]
	counts       *Client[countRow]
	cycles       *Client[cycleRow]
	events       *Client[eventRow]
	participants *Client[participantRow]
}

// NewProgramStore creates the dashboard query store bound to conn.
func NewProgramStore(conn *Connection, cfg config.Provider) (*ProgramStore, error) {
	groups, err := NewClient[groupRow](conn, cfg)
	if err != nil {
		return nil, err
	}
	counts, err := NewClient[countRow](conn, cfg)
	if err != nil {
		return nil, err
	}
	cycles, err := NewClient[cycleRow](conn, cfg)
	if err != nil {
		return nil, err
	}
	events, err := NewClient[eventRow](conn, cfg)
	if err != nil {
		return nil, err
	}
	participants, err := NewClient[participantRow](conn, cfg)
	if err != nil {
		return nil, err
	}
	return &ProgramStore{
		groups:       groups,
		counts:       counts,
		cycles:       cycles,
		events:       events,
		participants: participants,
	}, nil
}

// ListGroups returns all groups with their leader's name joined in.
func (s *ProgramStore) ListGroups(ctx context.Context) ([]domain.Group, error) {
	rows, err := s.groups.Query(ctx, queryGroups, map[string]any{"table": tableGroups})
	if err != nil {
		return nil, WrapError(err, "list groups")
	}
	groups := make([]domain.Group, 0, len(rows))
	for _, r := range rows {
		groups = append(groups, r.toDomain())
	}
	return groups, nil
}

// CountParticipants runs an aggregate count instead of fetching rows.
func (s *ProgramStore) CountParticipants(ctx context.Context) (int, error) {
	row, err := s.counts.QueryOne(ctx, queryParticipantCount, map[string]any{"table": tableParticipants})
	if err != nil {
		return 0, WrapError(err, "count participants")
	}
	if row == nil {
		// GROUP ALL over an empty table yields no rows.
		return 0, nil
	}
	return row.Total, nil
}

// LatestCycle returns the cycle with the latest start date, or nil.
func (s *ProgramStore) LatestCycle(ctx context.Context) (*domain.Cycle, error) {
	row, err := s.cycles.QueryOne(ctx, queryLatestCycle, map[string]any{"table": tableCycles})
	if err != nil {
		return nil, WrapError(err, "latest cycle")
	}
	if row == nil {
		return nil, nil
	}
	c := row.toDomain()
	return &c, nil
}

// NextEvent returns the earliest event dated at or after from, or nil.
func (s *ProgramStore) NextEvent(ctx context.Context, from time.Time) (*domain.Event, error) {
	row, err := s.events.QueryOne(ctx, queryNextEvent, map[string]any{
		"table": tableEvents,
		"from":  datetimeParam(from),
	})
	if err != nil {
		return nil, WrapError(err, "next event")
	}
	if row == nil {
		return nil, nil
	}
	e := row.toDomain()
	return &e, nil
}

// EventsBetween returns events dated within [from, to].
func (s *ProgramStore) EventsBetween(ctx context.Context, from, to time.Time) ([]domain.Event, error) {
	rows, err := s.events.Query(ctx, queryEventsBetween, map[string]any{
		"table": tableEvents,
		"from":  datetimeParam(from),
		"to":    datetimeParam(to),
	})
	if err != nil {
		return nil, WrapError(err, "events between")
	}
	events := make([]domain.Event, 0, len(rows))
	for _, r := range rows {
		events = append(events, r.toDomain())
	}
	return events, nil
}

// ListParticipants returns every participant with profile and group expanded.
func (s *ProgramStore) ListParticipants(ctx context.Context) ([]domain.Participant, error) {
	rows, err := s.participants.Query(ctx, queryParticipants, map[string]any{"table": tableParticipants})
	if err != nil {
		return nil, WrapError(err, "list participants")
	}
	participants := make([]domain.Participant, 0, len(rows))
	for _, r := range rows {
		participants = append(participants, r.toDomain())
	}
	return participants, nil
}
