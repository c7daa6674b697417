package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// Package storage contains the object-store abstraction the document pipeline writes to.
// Implementations must avoid using local disk and rely on streaming I/O only.

// ErrObjectNotFound is returned by Stat when no object exists under the key.
var ErrObjectNotFound = errors.New("object not found")

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and the implementation
// will buffer/chunk as supported by the backend.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is a reusable, S3-compatible object storage client interface.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Copy duplicates src to dst server-side, keeping content type and user metadata.
	Copy(ctx context.Context, src, dst string) (ObjectInfo, error)
	// Stat returns an object's info, or ErrObjectNotFound.
	Stat(ctx context.Context, key string) (ObjectInfo, error)
	// Delete removes an object by key. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited download URL. A non-empty filename is sent back
	// as an inline content-disposition.
	PresignGet(ctx context.Context, key string, expiry time.Duration, filename string) (string, error)
}
