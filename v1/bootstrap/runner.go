package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	traceSpan "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/relevancelab/searchinit/v1/dataset"
	"github.com/relevancelab/searchinit/v1/engine"
)

// Logger defines the interface for logging operations within the bootstrap package.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Observer receives the bootstrap metric events. *metrics.Metrics satisfies it.
type Observer interface {
	IncrementProbeAttempts(engine, outcome string)
	AddDocumentsIndexed(engine string, n int)
	AddBulkBatches(engine string, n int)
	RecordStageDuration(start time.Time, engine, stage string)
}

// Tracer creates one span per bootstrap stage. *tracer.Tracer satisfies it.
type Tracer interface {
	StartSpan(ctx context.Context, name string) (context.Context, traceSpan.Span)
	RecordErrorOnSpan(span traceSpan.Span, err error)
}

// Runner drives one bootstrap run against a single engine:
//
//	WAIT_READY → ENSURE_INDEX → COUNT → (MERGE? → REGISTER_FIELD?) → LOAD → VERIFY → DONE
//
// All transitions are one-shot; there is no retry of the load itself.
type Runner struct {
	engine  engine.Engine
	cfg     Config
	loader  *dataset.Loader
	source  dataset.Source
	log     Logger
	metrics Observer
	tracer  Tracer
}

// NewRunner constructs a Runner. Nil logger, metrics, or tracer are replaced
// with no-op implementations so tests can wire only what they assert on.
func NewRunner(cfg Config, e engine.Engine, loader *dataset.Loader, source dataset.Source,
	log Logger, metrics Observer, tracer Tracer) *Runner {

	if log == nil {
		log = nopLogger{}
	}
	if metrics == nil {
		metrics = nopObserver{}
	}
	if tracer == nil {
		tracer = nopTracer{}
	}
	if source == nil {
		source = dataset.FileSource{}
	}

	return &Runner{
		engine:  e,
		cfg:     cfg,
		loader:  loader,
		source:  source,
		log:     log,
		metrics: metrics,
		tracer:  tracer,
	}
}

// Run executes the full bootstrap procedure. Any returned error is fatal to
// the run; the caller translates it into a nonzero exit status.
func (r *Runner) Run(ctx context.Context) error {
	name := r.engine.Name()
	r.log.Info("starting bootstrap", nil, map[string]interface{}{
		"engine":        name,
		"dataset":       r.cfg.DatasetPath,
		"force_reindex": r.cfg.ForceReindex,
	})

	// Vespa-style engines ship their schema as an application package that
	// must be deployed before the serving endpoint can come up.
	if deployer, ok := r.engine.(engine.Deployer); ok {
		if err := r.stage(ctx, "deploy", deployer.Deploy); err != nil {
			return fmt.Errorf("bootstrap: deploy failed: %w", err)
		}
	}

	if err := r.stage(ctx, "wait_ready", r.waitReady); err != nil {
		return err
	}

	if err := r.stage(ctx, "ensure_index", r.ensureIndex); err != nil {
		return fmt.Errorf("bootstrap: ensure index: %w", err)
	}

	count, err := r.countDocuments(ctx)
	if err != nil {
		return err
	}

	docs, err := r.readDataset(ctx)
	if err != nil {
		return err
	}

	if count > 0 && !r.cfg.ForceReindex {
		if count < int64(len(docs)) {
			// A previous run may have died mid-load: the gate only sees
			// "nonzero", so it will never self-heal without FORCE_REINDEX.
			r.log.Warn("index is nonempty but holds fewer documents than the dataset; a previous load may have been partial", nil, map[string]interface{}{
				"engine":  name,
				"count":   count,
				"dataset": len(docs),
			})
		}
		r.log.Info("skipping indexing as there are already docs indexed; set FORCE_REINDEX=true to force re-indexing", nil, map[string]interface{}{
			"engine": name,
			"count":  count,
		})
		return nil
	}

	docs, err = r.enrich(ctx, docs)
	if err != nil {
		return err
	}

	if r.cfg.ForceReindex && count > 0 {
		if truncater, ok := r.engine.(engine.Truncater); ok {
			if err := r.stage(ctx, "delete_all", truncater.DeleteAll); err != nil {
				return fmt.Errorf("bootstrap: delete all before reindex: %w", err)
			}
			r.log.Info("deleted all documents before reindexing", nil, map[string]interface{}{
				"engine": name,
			})
		}
	}

	var report *engine.LoadReport
	err = r.stage(ctx, "bulk_load", func(ctx context.Context) error {
		var loadErr error
		report, loadErr = r.engine.BulkLoad(ctx, docs)
		return loadErr
	})
	if err != nil {
		return fmt.Errorf("bootstrap: bulk load: %w", err)
	}

	r.metrics.AddDocumentsIndexed(name, report.Indexed)
	r.metrics.AddBulkBatches(name, report.Batches)
	if report.Partial() {
		// A partially indexed collection looks nonempty to the next run's
		// count gate and would never self-heal, so this must fail loudly.
		r.log.Error("bulk load had per-document failures", nil, map[string]interface{}{
			"engine": name,
			"report": report.String(),
			"errors": report.Errors,
		})
		return fmt.Errorf("bootstrap: bulk load: %s", report.String())
	}

	r.log.Info("bootstrap complete", nil, map[string]interface{}{
		"engine": name,
		"report": report.String(),
	})
	return nil
}

func (r *Runner) waitReady(ctx context.Context) error {
	poller := NewPoller(r.cfg.MaxAttempts, r.cfg.ProbeInterval, r.log, r.metrics)
	return poller.WaitReady(ctx, r.engine.Name(), r.engine.Ping)
}

func (r *Runner) ensureIndex(ctx context.Context) error {
	exists, err := r.engine.IndexExists(ctx)
	if err != nil {
		return fmt.Errorf("existence check: %w", err)
	}
	if exists {
		r.log.Info("index already exists, skipping creation", nil, map[string]interface{}{
			"engine": r.engine.Name(),
		})
		return nil
	}
	if err := r.engine.CreateIndex(ctx); err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	r.log.Info("index created", nil, map[string]interface{}{
		"engine": r.engine.Name(),
	})
	return nil
}

// countDocuments queries the count gate. A failed count is fatal unless
// CountFallbackZero is set: the decision to load depends on trusting this
// number, and a false zero under a transient failure risks a duplicate load.
func (r *Runner) countDocuments(ctx context.Context) (int64, error) {
	var count int64
	err := r.stage(ctx, "count", func(ctx context.Context) error {
		var countErr error
		count, countErr = r.engine.Count(ctx)
		return countErr
	})
	if err != nil {
		if r.cfg.CountFallbackZero {
			r.log.Warn("count query failed, defaulting to zero", err, map[string]interface{}{
				"engine": r.engine.Name(),
			})
			return 0, nil
		}
		return 0, fmt.Errorf("bootstrap: count documents: %w", err)
	}

	r.log.Info("current document count", nil, map[string]interface{}{
		"engine": r.engine.Name(),
		"count":  count,
	})
	return count, nil
}

func (r *Runner) readDataset(ctx context.Context) ([]dataset.Document, error) {
	reader, err := r.source.Open(ctx, r.cfg.DatasetPath)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: open dataset %s: %w", r.cfg.DatasetPath, err)
	}
	defer reader.Close()

	docs, err := r.loader.Documents(reader)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	r.log.Info("dataset loaded", nil, map[string]interface{}{
		"path":      r.cfg.DatasetPath,
		"documents": len(docs),
	})
	return docs, nil
}

// enrich left-joins the embeddings side file onto the dataset and registers
// the dense-vector field. A missing side file is a deliberate graceful
// degradation: the plain dataset is loaded verbatim.
func (r *Runner) enrich(ctx context.Context, docs []dataset.Document) ([]dataset.Document, error) {
	emb, err := r.readEmbeddings(ctx)
	if err != nil {
		return nil, err
	}
	if emb.Empty() {
		r.log.Info("using plain dataset without embeddings", nil, nil)
		return docs, nil
	}

	dim := emb.Dimension()
	if dim == 0 {
		return nil, errors.New("bootstrap: no valid embeddings detected, aborting embedding merge")
	}
	r.log.Info("detected embedding dimension", nil, map[string]interface{}{
		"dimension": dim,
	})

	var merged []dataset.Document
	err = r.stage(ctx, "merge", func(ctx context.Context) error {
		merged = r.loader.Merge(docs, emb)
		if r.cfg.MergedPath != "" {
			if writeErr := r.loader.WriteMerged(r.cfg.MergedPath, merged); writeErr != nil {
				// Debugging artifact only; the in-memory merge proceeds.
				r.log.Warn("could not write merged dataset copy", writeErr, nil)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Registration must land before the load so the engine indexes the
	// vector field instead of guessing a type for it.
	err = r.stage(ctx, "register_vector_field", func(ctx context.Context) error {
		return r.engine.RegisterVectorField(ctx, dim)
	})
	if err != nil {
		return nil, fmt.Errorf("bootstrap: register vector field: %w", err)
	}

	return merged, nil
}

func (r *Runner) readEmbeddings(ctx context.Context) (*dataset.Embeddings, error) {
	reader, err := r.source.Open(ctx, r.cfg.EmbeddingsPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.log.Info("embeddings file not found", nil, map[string]interface{}{
				"path": r.cfg.EmbeddingsPath,
			})
			return r.loader.Embeddings(strings.NewReader(""))
		}
		return nil, fmt.Errorf("bootstrap: open embeddings %s: %w", r.cfg.EmbeddingsPath, err)
	}
	defer reader.Close()

	emb, err := r.loader.Embeddings(reader)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	return emb, nil
}

// stage wraps a single bootstrap stage in a span and a duration observation.
func (r *Runner) stage(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	start := time.Now()
	ctx, span := r.tracer.StartSpan(ctx, name)
	defer span.End()

	err := fn(ctx)
	r.metrics.RecordStageDuration(start, r.engine.Name(), name)
	if err != nil {
		r.tracer.RecordErrorOnSpan(span, err)
	}
	return err
}

// nopObserver and nopTracer keep the Runner usable without wiring.
type nopObserver struct{}

func (nopObserver) IncrementProbeAttempts(string, string)         {}
func (nopObserver) AddDocumentsIndexed(string, int)               {}
func (nopObserver) AddBulkBatches(string, int)                    {}
func (nopObserver) RecordStageDuration(time.Time, string, string) {}

type nopTracer struct{}

func (nopTracer) StartSpan(ctx context.Context, name string) (context.Context, traceSpan.Span) {
	return noop.NewTracerProvider().Tracer("").Start(ctx, name)
}

func (nopTracer) RecordErrorOnSpan(traceSpan.Span, error) {}

// nopLogger mirrors dataset's internal no-op logger for this package.
type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Debug(string, error, ...map[string]interface{}) {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
func (nopLogger) Error(string, error, ...map[string]interface{}) {}
func (nopLogger) Fatal(string, error, ...map[string]interface{}) {}
