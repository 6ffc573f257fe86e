package bootstrap

import (
	"go.uber.org/fx"

	"github.com/relevancelab/searchinit/v1/dataset"
	"github.com/relevancelab/searchinit/v1/logger"
	"github.com/relevancelab/searchinit/v1/metrics"
	"github.com/relevancelab/searchinit/v1/tracer"
)

// FXModule wires the bootstrap runner into Fx.
//
// It provides:
//   - Config                  (NewConfig)
//   - *dataset.Loader         (built on the application logger)
//   - Logger/Observer/Tracer  (interface adapters over the concrete clients)
//   - *Runner                 (NewRunner)
//
// The application must additionally provide an engine.Engine and a
// dataset.Source (file or object store); those choices belong to the binary.
var FXModule = fx.Module(
	"bootstrap",

	fx.Provide(
		NewConfig, // -> Config

		func(l *logger.Logger) Logger { return l },
		func(m *metrics.Metrics) Observer { return m },
		func(t *tracer.Tracer) Tracer { return t },
		func(l *logger.Logger) *dataset.Loader { return dataset.NewLoader(l) },

		NewRunner, // -> *Runner
	),
)
