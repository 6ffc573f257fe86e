package minio

import (
	"context"

	"go.uber.org/fx"

	"github.com/relevancelab/searchinit/v1/dataset"
	"github.com/relevancelab/searchinit/v1/logger"
)

// FXModule wires the object-store dataset source into Fx. Including this
// module makes DATASET and EMBEDDINGS_FILE resolve against the configured
// bucket instead of the local filesystem.
var FXModule = fx.Module(
	"minio",

	fx.Provide(
		NewConfig, // -> *Config
		func(l *logger.Logger) Logger { return l },
		func(cfg *Config, log Logger) (*ObjectSource, error) {
			return NewObjectSource(context.Background(), cfg, log)
		},
		func(s *ObjectSource) dataset.Source { return s },
	),
)
