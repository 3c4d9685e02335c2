package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/envisionar/portal/internal/config"
	"github.com/envisionar/portal/internal/domain"
	"github.com/surrealdb/surrealdb.go"
)

// RecordAuthenticator verifies end-user credentials through SurrealDB record
// access. Each call opens its own short-lived connection so that signing in
// as a record user never changes the scope of the shared service connection.
type RecordAuthenticator struct {
	cfg  config.Provider
	dial Dialer
}

// NewRecordAuthenticator creates an authenticator using the configured access method.
func NewRecordAuthenticator(cfg config.Provider) *RecordAuthenticator {
	return &RecordAuthenticator{cfg: cfg, dial: DefaultDialer}
}

// SignIn checks the credentials and returns the session token issued by the database.
func (a *RecordAuthenticator) SignIn(ctx context.Context, email, password string) (string, error) {
	db, err := a.open(ctx)
	if err != nil {
		return "", err
	}
	defer a.close(db)

	// The data format must match what the access method's SIGNIN clause expects.
	data := map[string]any{
		"ns":       a.cfg.GetDBNs(),
		"db":       a.cfg.GetDBDb(),
		"ac":       a.cfg.GetDBAccess(),
		"email":    email,
		"password": password,
	}

	token, err := db.SignIn(ctx, data)
	if err != nil {
		if isConnectionError(err) {
			return "", NewDBError(err, "sign in")
		}
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
	}
	return token, nil
}

// Authenticate validates a session token and returns the identity it belongs to.
func (a *RecordAuthenticator) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, domain.ErrInvalidCredentials
	}

	db, err := a.open(ctx)
	if err != nil {
		return nil, err
	}
	defer a.close(db)

	if err := db.Authenticate(ctx, token); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
	}
	if err := db.Use(ctx, a.cfg.GetDBNs(), a.cfg.GetDBDb()); err != nil {
		return nil, NewDBError(err, "use namespace for authenticated session")
	}

	results, err := surrealdb.Query[[]string](ctx, db, "SELECT VALUE email FROM $auth", nil)
	if err != nil {
		return nil, NewDBError(err, "resolve authenticated identity")
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, NewDBError(ErrNotFound, "no authenticated user found")
	}

	return &domain.Identity{Email: (*results)[0].Result[0]}, nil
}

func (a *RecordAuthenticator) open(ctx context.Context) (*surrealdb.DB, error) {
	db, err := a.dial(ctx, a.cfg.GetDBURL())
	if err != nil {
		return nil, NewDBError(err, "connect for authentication")
	}
	return db, nil
}

func (a *RecordAuthenticator) close(db *surrealdb.DB) {
	if err := db.Close(context.Background()); err != nil {
		slog.Debug("Closing auth connection failed", "event", "db_auth_close_failure", "error", err)
	}
}
