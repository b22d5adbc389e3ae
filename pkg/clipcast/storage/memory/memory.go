package memory

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/clipcast/clipcast/pkg/clipcast"
)

// Backend is an in-memory implementation of the clipcast.BlobStore
// interface, used in tests and development.
type Backend struct {
	mu           sync.RWMutex
	blobs        map[string][]byte
	contentTypes map[string]string
}

// New creates a new in-memory storage backend
func New() *Backend {
	return &Backend{
		blobs:        make(map[string][]byte),
		contentTypes: make(map[string]string),
	}
}

// Upload stores the payload under the given key
func (b *Backend) Upload(ctx context.Context, key string, reader io.Reader, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.blobs[key] = data
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	b.contentTypes[key] = contentType
	return nil
}

// Download returns the payload stored under the given key
func (b *Backend) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.blobs[key]
	if !exists {
		return nil, clipcast.ErrBlobNotFound
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

// Delete removes the blob. Deleting a missing key is a no-op.
func (b *Backend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.blobs, key)
	delete(b.contentTypes, key)
	return nil
}

// Exists reports whether a blob is stored under the given key
func (b *Backend) Exists(ctx context.Context, key string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, exists := b.blobs[key]
	return exists, nil
}

// SignedURL is unsupported; the in-memory backend has no signing scheme
func (b *Backend) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	return "", errors.New("memory backend cannot sign URLs")
}

// Len returns the number of stored blobs
func (b *Backend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.blobs)
}

// ContentType returns the recorded content type for a stored blob
func (b *Backend) ContentType(key string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ct, exists := b.contentTypes[key]
	return ct, exists
}
