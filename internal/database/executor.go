package database

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
)

// surrealExecutor runs queries over a managed Connection.
type surrealExecutor[T any] struct {
	conn *Connection
}

// NewSurrealExecutor creates an executor that decodes the first statement's
// result into []T.
func NewSurrealExecutor[T any](conn *Connection) QueryExecutor[T] {
	return &surrealExecutor[T]{conn: conn}
}

func (e *surrealExecutor[T]) Query(ctx context.Context, query string, params map[string]any) ([]T, error) {
	var rows []T
	err := e.conn.WithConnection(ctx, func(db *surrealdb.DB) error {
		results, err := surrealdb.Query[[]T](ctx, db, query, params)
		if err != nil {
			return err
		}
		if results == nil || len(*results) == 0 {
			rows = nil
			return nil
		}
		rows = (*results)[0].Result
		return nil
	})
	if err != nil {
		return nil, NewDBError(fmt.Errorf("%w: %w", ErrQueryFailed, err), "surreal query").WithQuery(query).WithParams(params)
	}
	return rows, nil
}
