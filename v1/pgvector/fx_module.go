package pgvector

import (
	"context"

	"go.uber.org/fx"

	"github.com/relevancelab/searchinit/v1/engine"
	"github.com/relevancelab/searchinit/v1/logger"
)

// FXModule wires the pgvector engine into Fx.
var FXModule = fx.Module(
	"pgvector",

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
			client.Close()
			return nil
		},
	})
}
