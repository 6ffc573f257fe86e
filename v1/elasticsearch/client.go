package elasticsearch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Logger is the minimal logging surface this package needs.
// It is satisfied by *logger.Logger and by mocks in tests.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
}

type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
func (nopLogger) Debug(string, error, ...map[string]interface{}) {}

// Client talks to a single Elasticsearch index over the HTTP API.
//
// It hides all wire details (paths, bulk framing, response parsing)
// from the application layer.
type Client struct {
	cfg        *Config
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient constructs a Client from Config. It validates the config but does
// not contact the cluster; readiness is the caller's concern via Ping.
func NewClient(cfg *Config, log Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("elasticsearch: invalid config: %w", err)
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
func (c *Client) Name() string { return "elasticsearch" }

// Ping reports whether the cluster answers on the health endpoint.
// Any 2xx from /_cluster/health counts as ready; callers that need a
// particular cluster colour should query the endpoint themselves.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.getJSON(ctx, c.baseURL+"/_cluster/health", nil); err != nil {
		return fmt.Errorf("elasticsearch: ping: %w", err)
	}
	return nil
}
