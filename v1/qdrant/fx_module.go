package qdrant

import (
	"context"

	"go.uber.org/fx"

	"github.com/relevancelab/searchinit/v1/engine"
	"github.com/relevancelab/searchinit/v1/logger"
)

// FXModule wires the Qdrant engine into Fx.
//
// It provides:
//   - *Config        (NewConfig)
//   - *Client        (NewClient)
//   - engine.Engine  (the client itself)
//   - Lifecycle hook (closes the gRPC connection on shutdown)
var FXModule = fx.Module(
	"qdrant",

	fx.Provide(
		NewConfig, // -> *Config
		func(l *logger.Logger) Logger { return l },
		NewClient, // -> *Client
		func(c *Client) engine.Engine { return c },
	),

	fx.Invoke(registerLifecycle),
)

func registerLifecycle(lc fx.Lifecycle, client *Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
