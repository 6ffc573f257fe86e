package metrics

import "os"

// DefaultMetricsAddress is the default listen address for the scrape endpoint.
const DefaultMetricsAddress = ":9090"

// Config defines the configuration for the Prometheus metrics endpoint.
type Config struct {
	// Address determines the network address where the Prometheus metrics
	// HTTP server listens, e.g. ":9090". When empty, no server is started
	// and metrics are only available through the Registry, the usual mode
	// for a one-shot bootstrap run.
	Address string `yaml:"address" env:"METRICS_ADDRESS"`

	// EnableDefaultCollectors controls whether the built-in Go runtime
	// and process collectors are registered alongside the bootstrap metrics.
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" env:"METRICS_ENABLE_DEFAULT_COLLECTORS"`

	// ServiceName is applied to all metrics as a constant service label.
	ServiceName string `yaml:"service_name" env:"METRICS_SERVICE_NAME"`
}

// NewConfig reads the metrics configuration from environment variables.
func NewConfig() Config {
	service := os.Getenv("METRICS_SERVICE_NAME")
	if service == "" {
		service = "searchinit"
	}

	return Config{
		Address:                 os.Getenv("METRICS_ADDRESS"),
		EnableDefaultCollectors: os.Getenv("METRICS_ENABLE_DEFAULT_COLLECTORS") == "true",
		ServiceName:             service,
	}
}
