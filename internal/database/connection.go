package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/envisionar/portal/internal/config"
	"github.com/envisionar/portal/internal/retry"
	"github.com/surrealdb/surrealdb.go"
)

// Dialer opens a raw SurrealDB connection to an endpoint URL.
type Dialer func(ctx context.Context, endpoint string) (*surrealdb.DB, error)

// DefaultDialer connects with the driver's URL-based constructor.
var DefaultDialer Dialer = surrealdb.FromEndpointURLString

// Connection manages the service-level SurrealDB connection used for data
// queries. It signs in with the root credentials, selects the namespace and
// database, and reconnects with backoff when an operation fails because the
// link dropped.
type Connection struct {
	cfg     config.Provider
	dial    Dialer
	conn    *surrealdb.DB
	retryer *retry.Backoff
	mu      sync.RWMutex
	healthy bool
	done    chan struct{}
	closed  bool
}

// NewConnection creates a new managed database connection
func NewConnection(cfg config.Provider) *Connection {
	return &Connection{
		cfg:     cfg,
		dial:    DefaultDialer,
		retryer: retry.NewExponentialBackoff(),
		done:    make(chan struct{}),
	}
}

// Connect establishes the initial database connection
func (c *Connection) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return nil // Already connected
	}

	return c.reconnect(ctx)
}

// WithConnection executes a function with a database connection, handling reconnections
func (c *Connection) WithConnection(ctx context.Context, fn func(*surrealdb.DB) error) error {
	conn := c.getConnection()
	if conn == nil {
		return NewDBError(ErrNotConnected, "database not connected")
	}

	err := fn(conn)
	if err == nil {
		return nil
	}

	// Application-level errors are returned as they are.
	if !isConnectionError(err) || ctx.Err() != nil {
		return err
	}

	slog.WarnContext(ctx, "Database operation failed, attempting to reconnect with backoff",
		"event", "db_reconnect_triggered", "error", err, "db_url", redactDBURL(c.cfg.GetDBURL()))

	return c.retryer.Do(ctx, func(ctx context.Context) error {
		if reconnectErr := c.forceReconnect(ctx); reconnectErr != nil {
			return fmt.Errorf("reconnection failed: %w (original error: %v)", reconnectErr, err)
		}
		return fn(c.getConnection())
	})
}

// StartMonitoring begins health checks and automatic reconnection
func (c *Connection) StartMonitoring() {
	go c.monitorConnection()
}

// Close shuts down the connection and monitoring
func (c *Connection) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	close(c.done)
	c.healthy = false
	if c.conn != nil {
		err := c.conn.Close(ctx)
		c.conn = nil
		return err
	}
	return nil
}

// IsHealthy returns the current connection status
func (c *Connection) IsHealthy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.healthy
}

func (c *Connection) getConnection() *surrealdb.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.conn
}

func (c *Connection) reconnect(ctx context.Context) error {
	if c.conn != nil {
		_ = c.conn.Close(ctx)
		c.conn = nil
	}

	dbURL := c.cfg.GetDBURL()
	slog.DebugContext(ctx, "Attempting to connect to database", "event", "db_connect_attempt", "db_url", redactDBURL(dbURL))

	conn, err := c.dial(ctx, dbURL)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to create database connection", "event", "db_connect_failure",
			"db_url", redactDBURL(dbURL), "error", err)
		c.healthy = false
		return fmt.Errorf("failed to connect to database at %s: %w", redactDBURL(dbURL), err)
	}

	authData := &surrealdb.Auth{
		Username: c.cfg.GetDBUser(),
		Password: c.cfg.GetDBPass(),
	}
	if _, err = conn.SignIn(ctx, authData); err != nil {
		_ = conn.Close(ctx)
		slog.ErrorContext(ctx, "Failed to sign in to database", "event", "db_auth_failure",
			"db_url", redactDBURL(dbURL), "user", c.cfg.GetDBUser(), "error", err)
		c.healthy = false
		return fmt.Errorf("failed to sign in: %w", err)
	}

	if err = conn.Use(ctx, c.cfg.GetDBNs(), c.cfg.GetDBDb()); err != nil {
		_ = conn.Close(ctx)
		slog.ErrorContext(ctx, "Failed to use namespace/database", "event", "db_namespace_failure",
			"namespace", c.cfg.GetDBNs(), "database", c.cfg.GetDBDb(), "error", err)
		c.healthy = false
		return fmt.Errorf("failed to use namespace/db: %w", err)
	}

	c.conn = conn
	c.healthy = true
	slog.DebugContext(ctx, "Database connection established", "event", "db_connect_success",
		"db_url", redactDBURL(dbURL), "namespace", c.cfg.GetDBNs(), "database", c.cfg.GetDBDb())
	return nil
}

func (c *Connection) forceReconnect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return NewDBError(ErrNotConnected, "connection closed")
	}
	return c.reconnect(ctx)
}

func (c *Connection) monitorConnection() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := c.checkHealth(ctx); err != nil {
				slog.WarnContext(ctx, "Database health check failed, attempting reconnection with backoff",
					"event", "db_health_check_failure", "error", err)
				if reconnectErr := c.retryer.Do(ctx, c.forceReconnect); reconnectErr != nil {
					slog.ErrorContext(ctx, "Failed to reconnect to database after health check failure",
						"event", "db_reconnect_failure", "error", reconnectErr)
				}
			}
			cancel()
		case <-c.done:
			return
		}
	}
}

func (c *Connection) checkHealth(ctx context.Context) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		c.setHealthy(false)
		return errors.New("no active database connection")
	}

	if _, err := conn.Version(ctx); err != nil {
		c.setHealthy(false)
		return fmt.Errorf("database health check failed for %s: %w", redactDBURL(c.cfg.GetDBURL()), err)
	}

	// Sample successful health checks to reduce log volume.
	if rand.Float32() < 0.1 {
		slog.DebugContext(ctx, "Database health check successful", "event", "db_health_check_success")
	}
	c.setHealthy(true)
	return nil
}

func (c *Connection) setHealthy(v bool) {
	c.mu.Lock()
	c.healthy = v
	c.mu.Unlock()
}

// isConnectionError checks if an error is likely due to a lost or failed connection.
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "broken pipe") ||
		strings.Contains(errMsg, "unexpected eof") ||
		strings.Contains(errMsg, "use of closed network connection")
}

// redactDBURL returns dbURL with any password replaced.
func redactDBURL(dbURL string) string {
	parsedURL, err := url.Parse(dbURL)
	if err != nil {
		return "invalid-url"
	}
	return parsedURL.Redacted()
}
