package tracer

import "os"

// Config controls trace export for the bootstrap tool.
type Config struct {
	// ServiceName is reported as the otel service.name resource attribute.
	ServiceName string `yaml:"service_name" env:"TRACER_SERVICE_NAME"`

	// AppEnv tags spans with the deployment environment (e.g. "local", "ci").
	AppEnv string `yaml:"app_env" env:"APP_ENV"`

	// EnableExport turns on the OTLP/HTTP exporter. When false the provider
	// still creates spans (so log correlation works) but exports nothing.
	EnableExport bool `yaml:"enable_export" env:"TRACER_ENABLE_EXPORT"`
}

// NewConfig reads the tracer configuration from environment variables.
func NewConfig() Config {
	service := os.Getenv("TRACER_SERVICE_NAME")
	if service == "" {
		service = "searchinit"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}

	return Config{
		ServiceName:  service,
		AppEnv:       env,
		EnableExport: os.Getenv("TRACER_ENABLE_EXPORT") == "true",
	}
}
