package vespa

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	// Connection. Vespa splits administration from serving: the config
	// server accepts application packages, the container serves queries
	// and the document API.
	ConfigEndpoint string // Base URL of the config server (default http://localhost:19071)
	Endpoint       string // Base URL of the container (default http://localhost:8080)
	HTTPTimeoutS   int    // HTTP timeout seconds (default 30)

	// Application package
	AppPackagePath    string // Directory holding services.xml and schemas/ (default /opt/app/vespa-app)
	Tenant            string // Tenant for deployment (default "default")
	ConfigMaxAttempts int    // Config server readiness budget at 1s intervals (default 300)

	// Document addressing
	Namespace    string // Document namespace (default "default")
	DocumentType string // Document type, must match the deployed schema (default "documents")
	Cluster      string // Content cluster name, needed for delete-by-selection (default "documents")

	// Feeding
	FeedWorkers int // Concurrent document PUTs (default 16)
}

// NewConfig reads from environment variables.
func NewConfig() *Config {
	return &Config{
		ConfigEndpoint:    getEnv("VESPA_CONFIG_ENDPOINT", "http://localhost:19071"),
		Endpoint:          getEnv("VESPA_ENDPOINT", "http://localhost:8080"),
		HTTPTimeoutS:      getEnvInt("VESPA_HTTP_TIMEOUT_SECONDS", 30),
		AppPackagePath:    getEnv("VESPA_APP_PACKAGE", "/opt/app/vespa-app"),
		Tenant:            getEnv("VESPA_TENANT", "default"),
		ConfigMaxAttempts: getEnvInt("VESPA_CONFIG_MAX_ATTEMPTS", 300),
		Namespace:         getEnv("VESPA_NAMESPACE", "default"),
		DocumentType:      getEnv("VESPA_DOCUMENT_TYPE", "documents"),
		Cluster:           getEnv("VESPA_CLUSTER", "documents"),
		FeedWorkers:       getEnvInt("VESPA_FEED_WORKERS", 16),
	}
}

// Validate ensures required fields are present.
func (c *Config) Validate() error {
	if c.ConfigEndpoint == "" {
		return fmt.Errorf("vespa: missing VESPA_CONFIG_ENDPOINT")
	}
	if c.Endpoint == "" {
		return fmt.Errorf("vespa: missing VESPA_ENDPOINT")
	}
	if c.Namespace == "" || c.DocumentType == "" {
		return fmt.Errorf("vespa: namespace and document type are required")
	}
	if c.FeedWorkers <= 0 {
		return fmt.Errorf("vespa: feed workers must be positive, got %d", c.FeedWorkers)
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
