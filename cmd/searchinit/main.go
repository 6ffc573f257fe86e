// Command searchinit initialises a search engine environment: it waits for
// the engine, ensures the index or schema exists, and performs an idempotent
// dataset load. The engine is selected with SEARCHINIT_ENGINE (solr,
// elasticsearch, opensearch, vespa, qdrant or pgvector); set
// SEARCHINIT_SOURCE=minio to read dataset files from an object store
// instead of the local filesystem.
//
// The process exits 0 when bootstrap completes (including the "already
// loaded, skipping" path) and 1 on any failure, so it slots into init
// containers and one-shot jobs.
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/fx"

	"github.com/relevancelab/searchinit/v1/bootstrap"
	"github.com/relevancelab/searchinit/v1/dataset"
	"github.com/relevancelab/searchinit/v1/elasticsearch"
	"github.com/relevancelab/searchinit/v1/logger"
	"github.com/relevancelab/searchinit/v1/metrics"
	"github.com/relevancelab/searchinit/v1/minio"
	"github.com/relevancelab/searchinit/v1/opensearch"
	"github.com/relevancelab/searchinit/v1/pgvector"
	"github.com/relevancelab/searchinit/v1/qdrant"
	"github.com/relevancelab/searchinit/v1/solr"
	"github.com/relevancelab/searchinit/v1/tracer"
	"github.com/relevancelab/searchinit/v1/vespa"
)

func main() {
	engineModule, err := engineFor(os.Getenv("SEARCHINIT_ENGINE"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	app := fx.New(
		logger.FXModule,
		metrics.FXModule,
		tracer.FXModule,
		bootstrap.FXModule,
		engineModule,
		sourceModule(os.Getenv("SEARCHINIT_SOURCE")),

		fx.Invoke(run),
	)

	// Run blocks until Shutdown and exits the process with the code
	// passed to the Shutdowner.
	app.Run()
}

// engineFor maps the SEARCHINIT_ENGINE value onto an engine Fx module.
func engineFor(name string) (fx.Option, error) {
	switch name {
	case "solr":
		return solr.FXModule, nil
	case "elasticsearch", "":
		return elasticsearch.FXModule, nil
	case "opensearch":
		return opensearch.FXModule, nil
	case "vespa":
		return vespa.FXModule, nil
	case "qdrant":
		return qdrant.FXModule, nil
	case "pgvector":
		return pgvector.FXModule, nil
	default:
		return nil, fmt.Errorf("unknown SEARCHINIT_ENGINE %q (want solr, elasticsearch, opensearch, vespa, qdrant or pgvector)", name)
	}
}

// sourceModule selects where dataset files come from.
func sourceModule(name string) fx.Option {
	if name == "minio" {
		return minio.FXModule
	}
	return fx.Provide(func() dataset.Source { return dataset.FileSource{} })
}

// run executes bootstrap once and shuts the application down with the
// matching exit code.
func run(lc fx.Lifecycle, sd fx.Shutdowner, runner *bootstrap.Runner, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				code := 0
				if err := runner.Run(context.Background()); err != nil {
					log.Error("bootstrap failed", err)
					code = 1
				}
				_ = sd.Shutdown(fx.ExitCode(code))
			}()
			return nil
		},
	})
}
