package engine

import (
	"context"

	"github.com/relevancelab/searchinit/v1/dataset"
)

// Engine is the common capability interface for all search engines.
// It provides an engine-agnostic abstraction over the handful of operations
// the bootstrap procedure needs, allowing one runner to drive Solr,
// Elasticsearch, OpenSearch, Vespa, Qdrant, or pgvector without changing
// application code.
//
// Example usage:
//
//	func NewRunner(e engine.Engine) *Runner {
//	    return &Runner{engine: e}
//	}
//
//	// Works with any implementation:
//	// - solr.NewClient(cfg, log)
//	// - elasticsearch.NewClient(cfg, log)
//	// - vespa.NewClient(cfg, log)
//
//go:generate mockgen -source=interface.go -destination=mock/mock.go -package=mock
type Engine interface {
	// Name identifies the engine in logs, metrics, and error messages.
	Name() string

	// Ping issues a single readiness probe against the engine's health
	// endpoint. It returns nil as soon as the engine reports healthy; the
	// bootstrap poller owns the retry loop and its attempt budget.
	Ping(ctx context.Context) error

	// IndexExists reports whether the target index/collection exists.
	// Engines with a declarative provisioning model (Solr cores, Vespa
	// application packages) may derive this from reachability alone.
	IndexExists(ctx context.Context) (bool, error)

	// CreateIndex creates the target index/collection.
	// Safe to call when it already exists: "already exists"-class responses
	// are tolerated, not errors.
	CreateIndex(ctx context.Context) error

	// Count returns the current number of documents in the target index.
	// The runner's count gate trusts this number to decide whether to load,
	// so implementations must return an error rather than guessing zero,
	// except where an engine variant documents a zero fallback (Vespa).
	Count(ctx context.Context) (int64, error)

	// RegisterVectorField declares the dense-vector field (dimension,
	// cosine similarity, HNSW indexing) ahead of a load of enriched
	// documents. Called at most once per run, strictly before BulkLoad.
	RegisterVectorField(ctx context.Context, dimension int) error

	// BulkLoad submits all documents to the engine's bulk/update endpoint
	// with an immediate refresh/commit, so a subsequent run's count gate
	// observes them. The report carries per-item failures where the
	// engine's response format exposes them.
	BulkLoad(ctx context.Context, docs []dataset.Document) (*LoadReport, error)
}

// Truncater is an optional capability: engines that can wipe the index
// implement it, and a forced reindex deletes all documents before loading.
type Truncater interface {
	DeleteAll(ctx context.Context) error
}

// Deployer is an optional capability for engines whose schema ships as a
// deployable application package (Vespa). Deploy runs after construction and
// before the readiness wait on the serving endpoint.
type Deployer interface {
	Deploy(ctx context.Context) error
}
