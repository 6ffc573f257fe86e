package opensearch

import (
	"go.uber.org/fx"

	"github.com/relevancelab/searchinit/v1/engine"
	"github.com/relevancelab/searchinit/v1/logger"
)

// FXModule wires the OpenSearch engine into Fx.
var FXModule = fx.Module(
	"opensearch",

	fx.Provide(
		NewConfig, // -> *Config
		func(l *logger.Logger) Logger { return l },
		NewClient, // -> *Client
		func(c *Client) engine.Engine { return c },
	),
)
