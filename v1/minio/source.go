package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/relevancelab/searchinit/v1/dataset"
)

// Logger is the minimal logging surface this package needs.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
}

type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Debug(string, error, ...map[string]interface{}) {}

// ObjectSource serves dataset and embedding files from an object store
// instead of the local filesystem. It satisfies dataset.Source, so the
// bootstrap runner can read DATASET and EMBEDDINGS_FILE as object keys.
type ObjectSource struct {
	client *minio.Client
	cfg    *Config
	log    Logger
}

var _ dataset.Source = (*ObjectSource)(nil)

// NewObjectSource connects to the object store and verifies that the
// configured bucket exists.
func NewObjectSource(ctx context.Context, cfg *Config, log Logger) (*ObjectSource, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("minio: invalid config: %w", err)
	}
	if log == nil {
		log = nopLogger{}
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio: connect: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio: check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("minio: bucket %q does not exist", cfg.Bucket)
	}

	return &ObjectSource{client: client, cfg: cfg, log: log}, nil
}

// Open returns a reader over the named object. A missing object comes back
// as fs.ErrNotExist, which the bootstrap runner relies on to tell "no
// embeddings shipped" apart from a real storage failure.
func (s *ObjectSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.cfg.Bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("minio: get %s/%s: %w", s.cfg.Bucket, name, translateError(err))
	}

	// GetObject is lazy; Stat forces the first request so absence is
	// detected here rather than on the first Read.
	if _, err := obj.Stat(); err != nil {
		obj.Close() //nolint:errcheck
		return nil, fmt.Errorf("minio: stat %s/%s: %w", s.cfg.Bucket, name, translateError(err))
	}

	s.log.Debug("opened object", nil, map[string]interface{}{
		"bucket": s.cfg.Bucket,
		"key":    name,
	})
	return obj, nil
}

// translateError maps the storage API's not-found response onto
// fs.ErrNotExist while leaving other errors untouched.
func translateError(err error) error {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) && (resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket") {
		return fmt.Errorf("%w: %s", fs.ErrNotExist, resp.Code)
	}
	return err
}
