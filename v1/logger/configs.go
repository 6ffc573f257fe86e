package logger

import "os"

// Log levels accepted by Config.Level.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

type Config struct {
	// Level controls the minimum level that is emitted.
	// Unknown values fall back to "info".
	Level string `yaml:"level" env:"ZAP_LOGGER_LEVEL"`

	// ServiceName is attached to every entry as the "service" field.
	ServiceName string `yaml:"service_name" env:"LOGGER_SERVICE_NAME"`

	// EnableTracing makes the *WithContext methods extract the active
	// OpenTelemetry span and attach trace_id/span_id fields.
	EnableTracing bool `yaml:"enable_tracing" env:"LOGGER_ENABLE_TRACING"`
}

// NewConfig reads the logger configuration from environment variables.
func NewConfig() Config {
	service := os.Getenv("LOGGER_SERVICE_NAME")
	if service == "" {
		service = "searchinit"
	}

	return Config{
		Level:         os.Getenv("ZAP_LOGGER_LEVEL"),
		ServiceName:   service,
		EnableTracing: os.Getenv("LOGGER_ENABLE_TRACING") == "true",
	}
}
