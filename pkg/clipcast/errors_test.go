package clipcast

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAssetErrorUnwraps(t *testing.T) {
	err := &AssetError{AssetID: uuid.New(), Op: "delete", Err: ErrForbidden}

	assert.ErrorIs(t, err, ErrForbidden)
	assert.Contains(t, err.Error(), "delete")
}

func TestStorageErrorUnwrapsThroughAssetError(t *testing.T) {
	inner := &StorageError{Key: "abc.mp4", Op: "upload", Err: ErrBlobNotFound}
	err := &AssetError{AssetID: uuid.New(), Op: "create", Err: inner}

	assert.ErrorIs(t, err, ErrBlobNotFound)

	var storageErr *StorageError
	assert.True(t, errors.As(err, &storageErr))
	assert.Equal(t, "abc.mp4", storageErr.Key)
}
