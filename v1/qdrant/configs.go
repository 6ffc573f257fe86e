package qdrant

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	// Hostname of the Qdrant server, e.g. "localhost".
	Endpoint string `yaml:"endpoint" env:"QDRANT_ENDPOINT"`

	// gRPC port of the Qdrant server. Defaults to 6334.
	Port int `yaml:"port" env:"QDRANT_PORT"`

	// Optional authentication token for secured deployments.
	APIKey string `yaml:"api_key" env:"QDRANT_API_KEY"`

	// Whether to perform version compatibility checks between client and server.
	CheckCompatibility bool `yaml:"check_compatibility" env:"QDRANT_CHECK_COMPATIBILITY"`

	// Target collection name.
	Collection string `yaml:"collection" env:"QDRANT_COLLECTION"`

	// Dimension used when the collection is created before any embeddings
	// have been seen. A later registration with a different dimension
	// recreates the collection while it is still empty.
	VectorSize int `yaml:"vector_size" env:"QDRANT_VECTOR_SIZE"`

	// Points per upsert request.
	BatchSize int `yaml:"batch_size" env:"QDRANT_BATCH_SIZE"`
}

// NewConfig reads from environment variables.
func NewConfig() *Config {
	return &Config{
		Endpoint:           getEnv("QDRANT_ENDPOINT", "localhost"),
		Port:               getEnvInt("QDRANT_PORT", 6334),
		APIKey:             os.Getenv("QDRANT_API_KEY"),
		CheckCompatibility: getEnvBool("QDRANT_CHECK_COMPATIBILITY", false),
		Collection:         getEnv("QDRANT_COLLECTION", "documents"),
		VectorSize:         getEnvInt("QDRANT_VECTOR_SIZE", 1536),
		BatchSize:          getEnvInt("QDRANT_BATCH_SIZE", 200),
	}
}

// Validate ensures required fields are present.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("qdrant: missing QDRANT_ENDPOINT")
	}
	if c.Collection == "" {
		return fmt.Errorf("qdrant: missing QDRANT_COLLECTION")
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("qdrant: batch size must be positive, got %d", c.BatchSize)
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

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
