// Package app wires configuration, the backend and the services built on it.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/envisionar/portal/internal/audit"
	"github.com/envisionar/portal/internal/config"
	"github.com/envisionar/portal/internal/dashboard"
	"github.com/envisionar/portal/internal/database"
	"github.com/envisionar/portal/internal/database/memory"
	"github.com/envisionar/portal/internal/domain"
	"github.com/envisionar/portal/internal/handlers"
	"github.com/envisionar/portal/internal/metrics"
	"github.com/envisionar/portal/internal/pubsub"
	"github.com/envisionar/portal/internal/rendering"
	"github.com/envisionar/portal/internal/session"
	"github.com/samber/do/v2"
	"github.com/spf13/afero"
)

type options struct {
	fs      afero.Fs
	backend domain.Backend
}

// Option customises the container.
type Option func(*options)

// WithFs sets the filesystem the memory backend reads its seed from.
func WithFs(fs afero.Fs) Option { return func(o *options) { o.fs = fs } }

// WithBackend skips backend construction and uses b instead.
func WithBackend(b domain.Backend) Option { return func(o *options) { o.backend = b } }

// NewContainer registers every service provider. Services are built lazily
// on first invocation; ctx bounds the initial backend connection.
func NewContainer(ctx context.Context, cfg config.Provider, opts ...Option) *do.RootScope {
	o := options{fs: afero.NewOsFs()}
	for _, opt := range opts {
		opt(&o)
	}

	i := do.New()

	do.ProvideValue[config.Provider](i, cfg)

	do.Provide(i, func(i do.Injector) (domain.Backend, error) {
		if o.backend != nil {
			return o.backend, nil
		}
		return newBackend(ctx, cfg, o.fs)
	})

	do.Provide(i, func(i do.Injector) (*pubsub.WatermillBridge, error) {
		return pubsub.NewWatermillBridge(), nil
	})

	do.Provide(i, func(i do.Injector) (*metrics.Metrics, error) {
		return metrics.New(), nil
	})

	do.Provide(i, func(i do.Injector) (rendering.Renderer, error) {
		return rendering.NewUniversalRenderer(), nil
	})

	do.Provide(i, func(i do.Injector) (*session.Gate, error) {
		backend, err := do.Invoke[domain.Backend](i)
		if err != nil {
			return nil, err
		}
		return session.NewGate(backend, backend,
			session.WithPublisher(do.MustInvoke[*pubsub.WatermillBridge](i)),
			session.WithRecorder(do.MustInvoke[*metrics.Metrics](i)),
		), nil
	})

	do.Provide(i, func(i do.Injector) (*dashboard.Aggregator, error) {
		backend, err := do.Invoke[domain.Backend](i)
		if err != nil {
			return nil, err
		}
		policy := dashboard.RetryPolicy{
			Attempts:  cfg.GetDashboardStepAttempts(),
			BaseDelay: cfg.GetDashboardRetryDelay(),
		}
		return dashboard.NewAggregator(backend, backend,
			dashboard.WithRetryPolicy(policy),
			dashboard.WithObserver(do.MustInvoke[*metrics.Metrics](i)),
			dashboard.WithPublisher(do.MustInvoke[*pubsub.WatermillBridge](i)),
		), nil
	})

	do.Provide(i, func(i do.Injector) (*audit.Subscriber, error) {
		return audit.NewSubscriber(do.MustInvoke[*pubsub.WatermillBridge](i), slog.Default()), nil
	})

	do.Provide(i, func(i do.Injector) (*handlers.AuthHandler, error) {
		gate, err := do.Invoke[*session.Gate](i)
		if err != nil {
			return nil, err
		}
		return handlers.NewAuthHandler(gate, do.MustInvoke[rendering.Renderer](i)), nil
	})

	do.Provide(i, func(i do.Injector) (*handlers.DashboardHandler, error) {
		agg, err := do.Invoke[*dashboard.Aggregator](i)
		if err != nil {
			return nil, err
		}
		return handlers.NewDashboardHandler(agg, do.MustInvoke[rendering.Renderer](i)), nil
	})

	return i
}

func newBackend(ctx context.Context, cfg config.Provider, fs afero.Fs) (domain.Backend, error) {
	switch cfg.GetBackend() {
	case config.BackendSurreal:
		b, err := database.NewSurrealBackend(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return b, nil
	case config.BackendMemory:
		slog.Info("Using in-memory backend", "event", "backend_memory", "seed_file", cfg.GetSeedFile())
		b, err := memory.Load(fs, cfg.GetSeedFile())
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.GetBackend())
	}
}
