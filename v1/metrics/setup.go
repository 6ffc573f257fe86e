package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates the Prometheus registry and the optional HTTP server
// responsible for exposing bootstrap metrics.
//
// Each run maintains its own isolated registry to prevent metric name
// collisions when multiple bootstraps share a process (integration tests).
type Metrics struct {
	// Server is the HTTP server exposing the /metrics endpoint.
	// Nil when Config.Address is empty.
	Server *http.Server

	// Registry is the Prometheus registry where all metrics are registered.
	Registry *prometheus.Registry

	// Bootstrap metric set
	probeAttempts    *prometheus.CounterVec
	documentsIndexed *prometheus.CounterVec
	bulkBatches      *prometheus.CounterVec
	stageDuration    *prometheus.HistogramVec
}

// NewMetrics initializes and returns a new Metrics instance.
//
// The setup includes:
//   - A dedicated Prometheus registry
//   - Optional Go/process/build-info collectors
//   - A global "service" label applied to all metrics
//   - The bootstrap metric set (probe attempts, batches, documents, durations)
//   - An HTTP server exposing /metrics when an address is configured
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	// All metrics emitted by this tool automatically include
	// the label service="<cfg.ServiceName>".
	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry: registry,
	}

	m.probeAttempts = createCounterVec(
		"bootstrap_probe_attempts_total",
		"Total number of readiness probes issued, by engine and outcome",
		[]string{"engine", "outcome"},
	)
	m.documentsIndexed = createCounterVec(
		"bootstrap_documents_indexed_total",
		"Total number of documents submitted for indexing, by engine",
		[]string{"engine"},
	)
	m.bulkBatches = createCounterVec(
		"bootstrap_bulk_batches_total",
		"Total number of bulk write requests sent, by engine",
		[]string{"engine"},
	)
	m.stageDuration = createHistogramVec(
		"bootstrap_stage_duration_seconds",
		"Duration of each bootstrap stage in seconds",
		[]string{"engine", "stage"},
		prometheus.DefBuckets,
	)

	wrappedRegistry.MustRegister(
		m.probeAttempts,
		m.documentsIndexed,
		m.bulkBatches,
		m.stageDuration,
	)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	if cfg.Address != "" {
		handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
		m.Server = &http.Server{
			Addr:    cfg.Address,
			Handler: handler,
		}
	}

	return m
}

// IncrementProbeAttempts counts a single readiness probe with its outcome
// ("success" or "failure").
func (m *Metrics) IncrementProbeAttempts(engine, outcome string) {
	m.probeAttempts.WithLabelValues(engine, outcome).Inc()
}

// AddDocumentsIndexed counts documents submitted for indexing.
func (m *Metrics) AddDocumentsIndexed(engine string, n int) {
	m.documentsIndexed.WithLabelValues(engine).Add(float64(n))
}

// AddBulkBatches counts bulk write requests issued during a load.
func (m *Metrics) AddBulkBatches(engine string, n int) {
	m.bulkBatches.WithLabelValues(engine).Add(float64(n))
}

// RecordStageDuration records the elapsed time of a bootstrap stage since start.
func (m *Metrics) RecordStageDuration(start time.Time, engine, stage string) {
	m.stageDuration.WithLabelValues(engine, stage).Observe(time.Since(start).Seconds())
}
