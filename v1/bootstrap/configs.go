package bootstrap

import (
	"os"
	"strconv"
	"time"
)

// Defaults match the paths the init container images ship with.
const (
	DefaultDatasetPath    = "/opt/app/data/dataset.json"
	DefaultEmbeddingsPath = "/opt/app/embeddings/documents_embeddings.jsonl"
	DefaultMergedPath     = "/tmp/merged_dataset.json"
	DefaultMaxAttempts    = 30
	DefaultProbeInterval  = time.Second
)

// Config holds the engine-agnostic knobs of a bootstrap run. Engine-specific
// settings (endpoints, index names, bulk shaping) live in the engine packages.
type Config struct {
	// DatasetPath is the dataset file (JSON array or NDJSON).
	DatasetPath string `yaml:"dataset_path" env:"DATASET"`

	// EmbeddingsPath is the optional embeddings side file. A missing file
	// degrades to a plain load.
	EmbeddingsPath string `yaml:"embeddings_path" env:"EMBEDDINGS_FILE"`

	// MergedPath, when non-empty, receives a copy of the merged dataset as
	// a debugging artifact.
	MergedPath string `yaml:"merged_path" env:"TMP_FILE"`

	// MaxAttempts bounds the readiness poll. Exhaustion is fatal.
	MaxAttempts int `yaml:"max_attempts" env:"BOOTSTRAP_MAX_ATTEMPTS"`

	// ProbeInterval is the fixed spacing between readiness probes.
	// No backoff: the target services boot in seconds, and a bounded
	// 1-second poll is easier to reason about than backoff schedules.
	ProbeInterval time.Duration `yaml:"probe_interval" env:"BOOTSTRAP_PROBE_INTERVAL"`

	// ForceReindex bypasses the count gate and, when the engine supports
	// it, deletes all documents before loading.
	ForceReindex bool `yaml:"force_reindex" env:"FORCE_REINDEX"`

	// CountFallbackZero treats a failed count query as an empty index
	// instead of a fatal error. Off by default: a false zero under a
	// transient failure risks a duplicate load. The Vespa variant
	// historically ran with this on.
	CountFallbackZero bool `yaml:"count_fallback_zero" env:"COUNT_FALLBACK_ZERO"`
}

// NewConfig reads the bootstrap configuration from environment variables.
func NewConfig() Config {
	cfg := Config{
		DatasetPath:    DefaultDatasetPath,
		EmbeddingsPath: DefaultEmbeddingsPath,
		MergedPath:     DefaultMergedPath,
		MaxAttempts:    DefaultMaxAttempts,
		ProbeInterval:  DefaultProbeInterval,
	}

	if v := os.Getenv("DATASET"); v != "" {
		cfg.DatasetPath = v
	}
	if v := os.Getenv("EMBEDDINGS_FILE"); v != "" {
		cfg.EmbeddingsPath = v
	}
	if v := os.Getenv("TMP_FILE"); v != "" {
		cfg.MergedPath = v
	}
	if v := os.Getenv("BOOTSTRAP_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxAttempts = n
		}
	}
	if v := os.Getenv("BOOTSTRAP_PROBE_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.ProbeInterval = d
		}
	}
	cfg.ForceReindex = os.Getenv("FORCE_REINDEX") == "true"
	cfg.CountFallbackZero = os.Getenv("COUNT_FALLBACK_ZERO") == "true"

	return cfg
}
