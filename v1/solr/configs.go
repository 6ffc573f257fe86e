package solr

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	// Connection
	Endpoint     string // Base URL of the Solr instance, including the /solr root
	Core         string // Target core name
	HTTPTimeoutS int    // HTTP timeout seconds (default 30)

	// Core creation
	ConfigSet string // Config set for new cores (default "_default")

	// Loading
	BatchSize int // Documents per update request (default 1000)
}

// NewConfig reads from environment variables.
func NewConfig() *Config {
	return &Config{
		Endpoint:     getEnv("SOLR_ENDPOINT", "http://localhost:8983/solr"),
		Core:         getEnv("SOLR_CORE", "documents"),
		HTTPTimeoutS: getEnvInt("SOLR_HTTP_TIMEOUT_SECONDS", 30),
		ConfigSet:    getEnv("SOLR_CONFIG_SET", "_default"),
		BatchSize:    getEnvInt("SOLR_BATCH_SIZE", 1000),
	}
}

// Validate ensures required fields are present.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("solr: missing SOLR_ENDPOINT")
	}
	if c.Core == "" {
		return fmt.Errorf("solr: missing SOLR_CORE")
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("solr: batch size must be positive, got %d", c.BatchSize)
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
