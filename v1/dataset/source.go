package dataset

import (
	"context"
	"io"
	"os"
)

// Source abstracts where dataset and embeddings files come from.
//
// The default is the local filesystem (files baked into the init container),
// but the same bootstrap can pull them from an object store; see the minio
// package's ObjectSource.
type Source interface {
	// Open returns a reader for the named file. Implementations must return
	// an error satisfying errors.Is(err, fs.ErrNotExist) when the file is
	// absent, so callers can distinguish "no embeddings" from real failures.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// FileSource reads files from the local filesystem.
type FileSource struct{}

func (FileSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	return os.Open(name)
}
