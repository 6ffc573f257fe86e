package solr

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

// Client talks to a single Solr core over the HTTP API.
type Client struct {
	cfg        *Config
	baseURL    string // endpoint with trailing slash trimmed, ends in /solr
	httpClient *http.Client
	log        Logger
}

// NewClient constructs a Client from Config. It does not contact Solr;
// readiness is the caller's concern via Ping.
func NewClient(cfg *Config, log Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("solr: invalid config: %w", err)
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

// coreURL returns the base URL for core-scoped handlers.
func (c *Client) coreURL() string {
	return c.baseURL + "/" + c.cfg.Core
}

// Name identifies the engine in logs and metrics.
func (c *Client) Name() string { return "solr" }

// Ping probes the instance-level system handler. The probe is deliberately
// not core-scoped: the core may not exist yet when the instance comes up,
// and creating it is IndexExists/CreateIndex territory.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.getJSON(ctx, c.baseURL+"/admin/info/system?wt=json", nil); err != nil {
		return fmt.Errorf("solr: ping: %w", err)
	}
	return nil
}
