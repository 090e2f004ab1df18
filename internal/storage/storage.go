// Package storage is the object store behind gophdrive: a flat keyspace of
// blobs with presigned read URLs. S3Store talks to S3 or any S3-compatible
// service (MinIO, LocalStack).
package storage

import (
	"context"
	"io"
	"time"
)

// ObjectInfo describes one stored object as returned by List.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// ObjectStore is the set of object operations gophdrive relies on.
type ObjectStore interface {
	// Put stores size bytes from body under key. onProgress, when non-nil,
	// receives the running byte count as the body is consumed. It returns the
	// object location reported by the store.
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string, onProgress func(sent int64)) (string, error)

	// PresignGet returns a URL granting read access to key for ttl.
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)

	// List returns every object whose key starts with prefix, in key order.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
