package solr

import (
	"go.uber.org/fx"

	"github.com/relevancelab/searchinit/v1/engine"
	"github.com/relevancelab/searchinit/v1/logger"
)

// FXModule wires the Solr engine into Fx.
var FXModule = fx.Module(
	"solr",

	fx.Provide(
		NewConfig, // -> *Config
		func(l *logger.Logger) Logger { return l },
		NewClient, // -> *Client
		func(c *Client) engine.Engine { return c },
	),
)
