package qdrant

import (
	"context"
	"fmt"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"
)

// Logger is the minimal logging surface this package needs.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
}

type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
func (nopLogger) Debug(string, error, ...map[string]interface{}) {}

// Client wraps the official Qdrant Go client with the operations a
// bootstrap run needs: health checking, collection management and
// batched upserts.
type Client struct {
	api *qdrant.Client
	cfg *Config
	log Logger
}

// NewClient constructs a Client from Config. The SDK sets up a lightweight
// gRPC connection, so no round trip happens here; readiness is the caller's
// concern via Ping.
func NewClient(cfg *Config, log Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("qdrant: invalid config: %w", err)
	}
	if log == nil {
		log = nopLogger{}
	}

	api, err := qdrant.NewClient(&qdrant.Config{
		Host:                   cfg.Endpoint,
		Port:                   cfg.Port,
		APIKey:                 cfg.APIKey,
		SkipCompatibilityCheck: !cfg.CheckCompatibility,
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant: initialize client: %w", err)
	}

	return &Client{api: api, cfg: cfg, log: log}, nil
}

// Name identifies the engine in logs and metrics.
func (c *Client) Name() string { return "qdrant" }

// Ping verifies availability through the SDK health check.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if _, err := c.api.HealthCheck(ctx); err != nil {
		return fmt.Errorf("qdrant: health check: %w", err)
	}
	return nil
}

// Close shuts down the underlying gRPC connection.
func (c *Client) Close() error {
	return c.api.Close()
}
