package elasticsearch

import (
	"go.uber.org/fx"

	"github.com/relevancelab/searchinit/v1/engine"
	"github.com/relevancelab/searchinit/v1/logger"
)

// FXModule wires the Elasticsearch engine into Fx.
//
// It provides:
//   - *Config        (NewConfig)
//   - *Client        (NewClient)
//   - engine.Engine  (the client itself)
var FXModule = fx.Module(
	"elasticsearch",

	fx.Provide(
		NewConfig, // -> *Config
		func(l *logger.Logger) Logger { return l },
		NewClient, // -> *Client
		func(c *Client) engine.Engine { return c },
	),
)
