// Package logger provides structured logging for the bootstrap tool.
//
// It wraps Uber's Zap with a small surface (Info, Debug, Warn, Error, Fatal,
// plus *WithContext variants) that every other package in this repository
// accepts through its own local Logger interface, keeping packages decoupled
// from the concrete implementation.
//
// # Direct Usage (Without FX)
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:       logger.Info,
//		ServiceName: "searchinit",
//	})
//	log.Info("Bootstrap started", nil, map[string]interface{}{
//		"engine": "elasticsearch",
//	})
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule,
//		fx.Provide(logger.NewConfig),
//		// ... other modules
//	)
//
// # Configuration
//
// The logger can be configured via environment variables:
//
//	ZAP_LOGGER_LEVEL=debug          # Log level (debug, info, warning, error)
//	LOGGER_SERVICE_NAME=searchinit  # Service label attached to every entry
//	LOGGER_ENABLE_TRACING=true      # Attach trace_id/span_id from context
//
// # Thread Safety
//
// All methods are safe for concurrent use by multiple goroutines.
package logger
