package database

import (
	"context"
	"time"

	"github.com/envisionar/portal/internal/config"
)

// Client is a type-safe, read-only query client for rows of type T.
type Client[T any] struct {
	executor     QueryExecutor[T]
	queryTimeout time.Duration
}

// NewClient creates a new type-safe database client bound to a managed connection.
func NewClient[T any](conn *Connection, cfg config.Provider, opts ...ClientOption[T]) (*Client[T], error) {
	if cfg == nil {
		return nil, NewDBError(ErrInvalidInput, "config provider cannot be nil")
	}
	queryTimeout := cfg.GetDBQueryTimeout()
	if queryTimeout <= 0 {
		return nil, NewDBError(ErrInvalidInput, "DB_QUERY_TIMEOUT must be a positive duration")
	}

	c := &Client[T]{queryTimeout: queryTimeout}
	if conn != nil {
		c.executor = NewSurrealExecutor[T](conn)
	}

	// Apply options
	for _, opt := range opts {
		opt(c)
	}

	if c.executor == nil {
		return nil, NewDBError(ErrInvalidInput, "either a connection or an executor is required")
	}
	return c, nil
}

// Query runs query and returns every row.
func (c *Client[T]) Query(ctx context.Context, query string, params map[string]any) ([]T, error) {
	ctx, cancel := getTimeoutFromContext(ctx, c.queryTimeout, ContextKeyQueryTimeout)
	defer cancel()
	return c.executor.Query(ctx, query, params)
}

// QueryOne runs query and returns its first row, or (nil, nil) when there are none.
func (c *Client[T]) QueryOne(ctx context.Context, query string, params map[string]any) (*T, error) {
	rows, err := c.Query(ctx, query, params)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}
