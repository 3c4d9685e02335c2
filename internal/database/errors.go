package database

import (
	"errors"
	"fmt"
)

// Common database errors that can be checked using errors.Is()
var (
	// ErrNotFound is returned when a record is not found in the database.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidInput is returned when invalid input is provided to a method.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrQueryFailed is returned when a query execution fails.
	ErrQueryFailed = errors.New("query execution failed")

	// ErrMultipleResults is returned when a single-row query yields several rows.
	ErrMultipleResults = errors.New("multiple records found")

	// ErrNotConnected is returned when no healthy connection is available.
	ErrNotConnected = errors.New("database not connected")
)

// DBError represents a database error with additional context.
type DBError struct {
	// The underlying error that was returned by the database driver.
	err error

	// Additional context about where the error occurred.
	context string

	// The query that was being executed when the error occurred.
	query string

	// Optional parameters that were used with the query.
	params map[string]any
}

// NewDBError creates a new DBError with the given error and context.
// The context should describe what operation was being performed when the error occurred.
func NewDBError(err error, context string) *DBError {
	return &DBError{
		err:     err,
		context: context,
	}
}

// WithQuery adds query information to the error.
func (e *DBError) WithQuery(query string) *DBError {
	e.query = query
	return e
}

// WithParams adds query parameters to the error. Values under keys that look
// like credentials are masked.
func (e *DBError) WithParams(params map[string]any) *DBError {
	masked := make(map[string]any, len(params))
	for k, v := range params {
		if k == "password" || k == "token" {
			v = "***"
		}
		masked[k] = v
	}
	e.params = masked
	return e
}

// Query returns the query that failed, if known.
func (e *DBError) Query() string { return e.query }

// Error returns the error message.
func (e *DBError) Error() string {
	msg := e.context
	if e.query != "" {
		msg = fmt.Sprintf("%s\nQuery: %s", msg, e.query)
	}
	if len(e.params) > 0 {
		msg = fmt.Sprintf("%s\nParams: %+v", msg, e.params)
	}
	if e.err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *DBError) Unwrap() error {
	return e.err
}

// WrapError wraps an error with additional context.
// If the error is already a DBError, the new context is prefixed to it.
func WrapError(err error, context string) error {
	if err == nil {
		return nil
	}

	var dbErr *DBError
	if errors.As(err, &dbErr) {
		wrapped := *dbErr
		if wrapped.context != "" {
			context = fmt.Sprintf("%s: %s", context, wrapped.context)
		}
		wrapped.context = context
		return &wrapped
	}

	return NewDBError(err, context)
}
