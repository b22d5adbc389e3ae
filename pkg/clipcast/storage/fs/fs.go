package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/clipcast/clipcast/pkg/clipcast"
)

// Backend is a filesystem implementation of the clipcast.BlobStore
// interface
type Backend struct {
	baseDir string
}

// Config options for the filesystem backend
type Config struct {
	BaseDir string // Base directory for storing blobs
}

// New creates a new filesystem storage backend
func New(config Config) (*Backend, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}

	if err := os.MkdirAll(config.BaseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &Backend{baseDir: config.BaseDir}, nil
}

// blobPath maps a key to a path under baseDir, rejecting traversal
func (b *Backend) blobPath(key string) (string, error) {
	if key == "" || strings.Contains(key, "..") || strings.ContainsAny(key, "/\\") {
		return "", fmt.Errorf("invalid blob key: %q", key)
	}
	return filepath.Join(b.baseDir, key), nil
}

// Upload stores the payload under the given key
func (b *Backend) Upload(ctx context.Context, key string, reader io.Reader, contentType string) error {
	path, err := b.blobPath(key)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Download returns the payload stored under the given key
func (b *Backend) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := b.blobPath(key)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, clipcast.ErrBlobNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// Delete removes the blob. Deleting a missing key is not an error.
func (b *Backend) Delete(ctx context.Context, key string) error {
	path, err := b.blobPath(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// Exists reports whether a blob is stored under the given key
func (b *Backend) Exists(ctx context.Context, key string) (bool, error) {
	path, err := b.blobPath(key)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("failed to stat file: %w", err)
	}

	return true, nil
}

// SignedURL is unsupported; the filesystem backend has no signing scheme
func (b *Backend) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	return "", errors.New("filesystem backend cannot sign URLs")
}
