package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const shutdownTimeout = 10 * time.Second

// Start runs the HTTP server until ctx is cancelled, then shuts it down and
// releases the backend.
func (s *Server) Start(ctx context.Context, addr string) error {
	if err := s.deps.Audit.Start(ctx); err != nil {
		return fmt.Errorf("start audit subscriber: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "event", "server_start", "addr", addr, "backend", s.deps.Config.GetBackend())
		if err := s.E.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	slog.Info("Shutting down HTTP server", "event", "server_shutdown")
	shutdownErr := s.E.Shutdown(shutdownCtx)
	closeErr := s.deps.Close(shutdownCtx)
	return errors.Join(serveErr, shutdownErr, closeErr)
}
