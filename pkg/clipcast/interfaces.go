package clipcast

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// BlobStore defines the interface for blob storage backends
type BlobStore interface {
	// Upload stores the payload under the given key
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Download returns the payload stored under the given key
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the blob. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether a blob is stored under the given key
	Exists(ctx context.Context, key string) (bool, error)

	// SignedURL returns a credentialed, time-boxed access URL for the key.
	// Backends without a signing scheme return an error.
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// Repository defines the interface for asset metadata persistence
type Repository interface {
	// CreateAsset persists a new record; the asset id must be unused
	CreateAsset(ctx context.Context, asset *Asset) error

	// GetAsset returns the record for id, or ErrAssetNotFound
	GetAsset(ctx context.Context, id uuid.UUID) (*Asset, error)

	// UpdateAsset writes the record only if the stored version still equals
	// expectedVersion. A stale version yields ErrVersionConflict; a missing
	// record yields ErrAssetNotFound.
	UpdateAsset(ctx context.Context, asset *Asset, expectedVersion int64) error

	// DeleteAsset removes the record. Deleting a missing id is not an error.
	DeleteAsset(ctx context.Context, id uuid.UUID) error

	// ListAssets returns all records, newest first. Point-in-time best
	// effort; no snapshot isolation.
	ListAssets(ctx context.Context) ([]*Asset, error)
}
