package opensearch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
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

// Client talks to a single OpenSearch index over the HTTP API.
//
// The wire surface is close to Elasticsearch but diverges where it matters
// for bootstrap: vector search goes through the k-NN plugin, which needs the
// index.knn setting at creation time and maps vectors as knn_vector.
type Client struct {
	cfg        *Config
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient constructs a Client from Config. It does not contact the
// cluster; readiness is the caller's concern via Ping.
func NewClient(cfg *Config, log Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("opensearch: invalid config: %w", err)
	}
	if log == nil {
		log = nopLogger{}
	}

	return &Client{
		cfg:        cfg,
		baseURL:    strings.TrimRight(cfg.Endpoint, "/"),
		httpClient: &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutS) * time.Second},
		log:        log,
	}, nil
}

// Name identifies the engine in logs and metrics.
func (c *Client) Name() string { return "opensearch" }

// Ping reports whether the cluster answers on the health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.getJSON(ctx, c.baseURL+"/_cluster/health", nil); err != nil {
		return fmt.Errorf("opensearch: ping: %w", err)
	}
	return nil
}
