package blobstore

import (
	"context"
	"errors"
	"io"
)

// ErrNotExist reports a storage key with no stored object.
var ErrNotExist = errors.New("blob does not exist")

// BlobStore is the byte-storage abstraction used by the media upload
// pipeline and the file service. Objects are written once under a
// caller-chosen key and never overwritten or deleted by this layer.
type BlobStore interface {
	// Put stores the stream under key. contentType is advisory; backends
	// that do not record it may ignore it.
	Put(ctx context.Context, key, contentType string, r io.Reader) error
	// Open returns a single-pass reader for the object stored under key,
	// or ErrNotExist.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// EnsureBucket makes the backing bucket/directory exist. Idempotent.
	EnsureBucket(ctx context.Context) error
}
