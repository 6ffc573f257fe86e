package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/relevancelab/searchinit/v1/bootstrap"
	"github.com/relevancelab/searchinit/v1/logger"
	"github.com/relevancelab/searchinit/v1/metrics"
	"github.com/relevancelab/searchinit/v1/tracer"
)

// validate builds the exact option set main composes and type-checks the
// dependency graph without constructing anything.
func validate(t *testing.T, engineModule, source fx.Option) error {
	t.Helper()
	return fx.ValidateApp(
		logger.FXModule,
		metrics.FXModule,
		tracer.FXModule,
		bootstrap.FXModule,
		engineModule,
		source,
		fx.Invoke(run),
	)
}

func TestDependencyGraphResolvesForEveryEngine(t *testing.T) {
	engines := []string{"solr", "elasticsearch", "opensearch", "vespa", "qdrant", "pgvector"}
	for _, name := range engines {
		t.Run(name, func(t *testing.T) {
			engineModule, err := engineFor(name)
			require.NoError(t, err)
			assert.NoError(t, validate(t, engineModule, sourceModule("")))
		})
	}
}

func TestDependencyGraphResolvesWithObjectStoreSource(t *testing.T) {
	engineModule, err := engineFor("elasticsearch")
	require.NoError(t, err)
	assert.NoError(t, validate(t, engineModule, sourceModule("minio")))
}

func TestEngineForDefaultsToElasticsearch(t *testing.T) {
	module, err := engineFor("")
	require.NoError(t, err)
	assert.NotNil(t, module)
}

func TestEngineForRejectsUnknownEngine(t *testing.T) {
	_, err := engineFor("sphinx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sphinx")
}
