package tracer

import (
	"context"

	"go.uber.org/fx"

	"github.com/relevancelab/searchinit/v1/logger"
)

var FXModule = fx.Module("tracer",
	fx.Provide(
		NewConfig,
		func(l *logger.Logger) Logger { return l },
		NewClient,
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// RegisterTracerLifecycle flushes and shuts down the tracer provider on stop,
// so spans from a short-lived bootstrap run are not lost in the batcher.
func RegisterTracerLifecycle(lc fx.Lifecycle, tracer *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			tracer.logger.Info("shutting down tracer...", nil, nil)
			if tracer.tracer == nil {
				tracer.logger.Warn("tracer was nil during shutdown", nil, nil)
				return nil
			}
			return tracer.tracer.Shutdown(ctx)
		},
	})
}
