package vespa

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

// Client talks to a Vespa deployment through both of its HTTP surfaces:
// the config server for application deployment and the container for
// queries and document feeding.
type Client struct {
	cfg        *Config
	configURL  string
	serveURL   string
	httpClient *http.Client
	log        Logger
}

// NewClient constructs a Client from Config. It does not contact Vespa;
// readiness is handled by Deploy (config server) and Ping (container).
func NewClient(cfg *Config, log Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("vespa: invalid config: %w", err)
	}
	if log == nil {
		log = nopLogger{}
	}

	return &Client{
		cfg:        cfg,
		configURL:  strings.TrimRight(cfg.ConfigEndpoint, "/"),
		serveURL:   strings.TrimRight(cfg.Endpoint, "/"),
		httpClient: &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutS) * time.Second},
		log:        log,
	}, nil
}

// Name identifies the engine in logs and metrics.
func (c *Client) Name() string { return "vespa" }

// Ping reports whether the container is up. The container only starts
// serving after an application has been activated, so this probe also
// implies a successful deployment.
func (c *Client) Ping(ctx context.Context) error {
	status, err := c.getStatus(ctx, c.serveURL+"/status.html")
	if err != nil {
		return fmt.Errorf("vespa: ping: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("vespa: ping: container answered http %d", status)
	}
	return nil
}

// documentURL builds a document API path. With a non-empty id it addresses
// a single document, otherwise the whole docid space of the type.
func (c *Client) documentURL(id string) string {
	base := c.serveURL + "/document/v1/" + c.cfg.Namespace + "/" + c.cfg.DocumentType + "/docid"
	if id == "" {
		return base
	}
	return base + "/" + id
}
