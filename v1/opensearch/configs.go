package opensearch

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	// Connection
	Endpoint     string // Base URL of the OpenSearch HTTP API
	Index        string // Target index name
	HTTPTimeoutS int    // HTTP timeout seconds (default 30)

	// Index creation
	Shards   int // Number of primary shards (default 1)
	Replicas int // Number of replicas (default 0)

	// Vector indexing (HNSW parameters for the knn_vector field)
	EfConstruction int // default 512
	M              int // default 16

	// Bulk loading
	BulkBatchSize     int  // Documents per _bulk request (default 1000)
	CheckBulkResponse bool // Inspect the bulk response body for per-item failures (default false)
}

// NewConfig reads from environment variables.
func NewConfig() *Config {
	return &Config{
		Endpoint:          getEnv("OPENSEARCH_ENDPOINT", "http://localhost:9200"),
		Index:             getEnv("OPENSEARCH_INDEX", "documents"),
		HTTPTimeoutS:      getEnvInt("OPENSEARCH_HTTP_TIMEOUT_SECONDS", 30),
		Shards:            getEnvInt("OPENSEARCH_SHARDS", 1),
		Replicas:          getEnvIntAllowZero("OPENSEARCH_REPLICAS", 0),
		EfConstruction:    getEnvInt("OPENSEARCH_KNN_EF_CONSTRUCTION", 512),
		M:                 getEnvInt("OPENSEARCH_KNN_M", 16),
		BulkBatchSize:     getEnvInt("OPENSEARCH_BULK_BATCH_SIZE", 1000),
		CheckBulkResponse: getEnvBool("OPENSEARCH_CHECK_BULK_RESPONSE", false),
	}
}

// Validate ensures required fields are present.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("opensearch: missing OPENSEARCH_ENDPOINT")
	}
	if c.Index == "" {
		return fmt.Errorf("opensearch: missing OPENSEARCH_INDEX")
	}
	if c.BulkBatchSize <= 0 {
		return fmt.Errorf("opensearch: bulk batch size must be positive, got %d", c.BulkBatchSize)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnvIntAllowZero(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
