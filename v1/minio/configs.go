package minio

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	// Connection
	Endpoint        string // Host:port of the MinIO/S3 endpoint
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	Region          string

	// Storage
	Bucket string // Bucket holding dataset and embedding objects
}

// NewConfig reads from environment variables.
func NewConfig() *Config {
	return &Config{
		Endpoint:        os.Getenv("MINIO_ENDPOINT"),
		AccessKeyID:     os.Getenv("MINIO_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("MINIO_SECRET_ACCESS_KEY"),
		UseSSL:          getEnvBool("MINIO_USE_SSL", false),
		Region:          os.Getenv("MINIO_REGION"),
		Bucket:          getEnv("MINIO_BUCKET", "datasets"),
	}
}

// Validate ensures required fields are present.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("minio: missing MINIO_ENDPOINT")
	}
	if c.Bucket == "" {
		return fmt.Errorf("minio: missing MINIO_BUCKET")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
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
