package clipcast

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error types
var (
	// ErrAssetNotFound indicates no metadata record exists for the given id
	ErrAssetNotFound = errors.New("asset not found")

	// ErrForbidden indicates the caller does not own the asset
	ErrForbidden = errors.New("caller does not own asset")

	// ErrVersionConflict indicates a conditioned metadata write targeted a
	// stale version; the caller must re-fetch before retrying
	ErrVersionConflict = errors.New("asset version conflict")

	// ErrBlobNotFound indicates a blob was not found in the blob store
	ErrBlobNotFound = errors.New("blob not found")
)

// AssetError represents an error from an asset lifecycle operation
type AssetError struct {
	AssetID uuid.UUID
	Op      string
	Err     error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("asset operation %s failed for asset %s: %v", e.Op, e.AssetID, e.Err)
}

func (e *AssetError) Unwrap() error {
	return e.Err
}

// StorageError represents an error from a blob store operation
type StorageError struct {
	Key string
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for key %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
