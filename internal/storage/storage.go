package storage

import (
	"context"
	"io"
)

// ObjectStore persists uploaded objects under a bucket and object path
// and resolves them back to a public URL.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, path string, r io.Reader) error
	Open(ctx context.Context, bucket, path string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, bucket, path string) error
	PublicURL(bucket, path string) string
}
