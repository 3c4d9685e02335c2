package database

import "context"

// QueryExecutor handles the execution of database queries.
// Client delegates to it, and tests replace it to avoid a live database.
type QueryExecutor[T any] interface {
	// Query executes a query and returns the rows of its first statement.
	// The query can include parameters using the $param syntax.
	Query(ctx context.Context, query string, params map[string]any) ([]T, error)
}

// ClientOption defines a function that configures a Client.
// This allows for flexible client configuration using functional options.
type ClientOption[T any] func(*Client[T])

// WithExecutor configures the client to use a custom QueryExecutor.
// This is useful for testing or for adding middleware to the executor.
func WithExecutor[T any](executor QueryExecutor[T]) ClientOption[T] {
	return func(c *Client[T]) {
		c.executor = executor
	}
}
