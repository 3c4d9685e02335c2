package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/envisionar/portal/internal/audit"
	"github.com/envisionar/portal/internal/config"
	"github.com/envisionar/portal/internal/dashboard"
	"github.com/envisionar/portal/internal/domain"
	"github.com/envisionar/portal/internal/handlers"
	"github.com/envisionar/portal/internal/metrics"
	"github.com/envisionar/portal/internal/pubsub"
	"github.com/envisionar/portal/internal/rendering"
	"github.com/envisionar/portal/internal/session"
	"github.com/samber/do/v2"
)

// Dependencies holds the resolved services used by the server and the CLI.
type Dependencies struct {
	Config     config.Provider
	Backend    domain.Backend
	Bus        *pubsub.WatermillBridge
	Metrics    *metrics.Metrics
	Renderer   rendering.Renderer
	Gate       *session.Gate
	Aggregator *dashboard.Aggregator
	Audit      *audit.Subscriber

	AuthHandler      *handlers.AuthHandler
	DashboardHandler *handlers.DashboardHandler
}

// Build resolves every service from a fresh container.
func Build(ctx context.Context, cfg config.Provider, opts ...Option) (*Dependencies, error) {
	i := NewContainer(ctx, cfg, opts...)

	backend, err := do.Invoke[domain.Backend](i)
	if err != nil {
		return nil, fmt.Errorf("backend: %w", err)
	}

	deps := &Dependencies{
		Config:   cfg,
		Backend:  backend,
		Bus:      do.MustInvoke[*pubsub.WatermillBridge](i),
		Metrics:  do.MustInvoke[*metrics.Metrics](i),
		Renderer: do.MustInvoke[rendering.Renderer](i),
	}
	deps.Gate = do.MustInvoke[*session.Gate](i)
	deps.Aggregator = do.MustInvoke[*dashboard.Aggregator](i)
	deps.Audit = do.MustInvoke[*audit.Subscriber](i)
	deps.AuthHandler = do.MustInvoke[*handlers.AuthHandler](i)
	deps.DashboardHandler = do.MustInvoke[*handlers.DashboardHandler](i)
	return deps, nil
}

// HealthChecker returns the backend's health probe, or nil when the backend
// has none.
func (d *Dependencies) HealthChecker() handlers.HealthChecker {
	if hc, ok := d.Backend.(handlers.HealthChecker); ok {
		return hc
	}
	return nil
}

// Close shuts down the bus and then the backend.
func (d *Dependencies) Close(ctx context.Context) error {
	return errors.Join(d.Bus.Close(), d.Backend.Close(ctx))
}
