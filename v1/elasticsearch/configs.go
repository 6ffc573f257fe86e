package elasticsearch

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	// Connection
	Endpoint     string // Base URL of the Elasticsearch HTTP API
	Index        string // Target index name
	HTTPTimeoutS int    // HTTP timeout seconds (default 30)

	// Index creation
	Shards          int  // Number of primary shards (default 1)
	Replicas        int  // Number of replicas (default 0)
	ExplicitMapping bool // Create the index with an explicit field mapping instead of relying on dynamic mapping

	// Bulk loading
	BulkBatchSize     int  // Documents per _bulk request (default 1000)
	CheckBulkResponse bool // Inspect the bulk response body for per-item failures (default true)
}

// NewConfig reads from environment variables.
func NewConfig() *Config {
	return &Config{
		Endpoint:          getEnv("ELASTICSEARCH_ENDPOINT", "http://localhost:9200"),
		Index:             getEnv("ELASTICSEARCH_INDEX", "documents"),
		HTTPTimeoutS:      getEnvInt("ELASTICSEARCH_HTTP_TIMEOUT_SECONDS", 30),
		Shards:            getEnvInt("ELASTICSEARCH_SHARDS", 1),
		Replicas:          getEnvIntAllowZero("ELASTICSEARCH_REPLICAS", 0),
		ExplicitMapping:   getEnvBool("ELASTICSEARCH_EXPLICIT_MAPPING", false),
		BulkBatchSize:     getEnvInt("ELASTICSEARCH_BULK_BATCH_SIZE", 1000),
		CheckBulkResponse: getEnvBool("ELASTICSEARCH_CHECK_BULK_RESPONSE", true),
	}
}

// Validate ensures required fields are present.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("elasticsearch: missing ELASTICSEARCH_ENDPOINT")
	}
	if c.Index == "" {
		return fmt.Errorf("elasticsearch: missing ELASTICSEARCH_INDEX")
	}
	if c.BulkBatchSize <= 0 {
		return fmt.Errorf("elasticsearch: bulk batch size must be positive, got %d", c.BulkBatchSize)
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

// getEnvIntAllowZero is like getEnvInt but accepts zero, needed for
// settings where zero is a meaningful value (replica count).
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
