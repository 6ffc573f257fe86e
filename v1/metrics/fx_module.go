package metrics

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/fx"

	"github.com/relevancelab/searchinit/v1/logger"
)

// FXModule defines the Fx module for the metrics package.
//
// The module:
//  1. Provides the NewMetrics factory function to the dependency injection
//     container.
//  2. Invokes RegisterMetricsLifecycle to manage startup and graceful shutdown
//     of the scrape server when one is configured.
//
// Usage:
//
//	app := fx.New(
//	    metrics.FXModule,
//	    // other modules...
//	)
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewConfig,
		NewMetrics,
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// RegisterMetricsLifecycle starts the scrape server on application start and
// shuts it down gracefully on stop. A nil server (no address configured) makes
// both hooks no-ops.
func RegisterMetricsLifecycle(lc fx.Lifecycle, m *Metrics, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if m.Server == nil {
				return nil
			}
			go func() {
				if err := m.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("metrics server terminated unexpectedly", err, nil)
				}
			}()
			log.Info("metrics server listening", nil, map[string]interface{}{
				"address": m.Server.Addr,
			})
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if m.Server == nil {
				return nil
			}
			return m.Server.Shutdown(ctx)
		},
	})
}
