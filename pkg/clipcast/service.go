package clipcast

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the asset lifecycle coordinator
type Service interface {
	// CreateAsset uploads both blobs and then writes the metadata record.
	// On failure no record exists and any blobs written by the attempt have
	// been compensated for. Never idempotent: a retry is a new asset.
	CreateAsset(ctx context.Context, req CreateAssetRequest) (*Asset, error)

	// GetAsset returns the asset with both blob keys resolved to access
	// URLs. Content is publicly viewable; there is no ownership check.
	GetAsset(ctx context.Context, id uuid.UUID) (*AssetView, error)

	// ListAssets scans the whole catalog and applies the request's filters
	ListAssets(ctx context.Context, req ListAssetsRequest) ([]*AssetView, error)

	// UpdateAssetFields applies a partial edit via a version-conditioned
	// write. Returns ErrForbidden for a non-owner and ErrVersionConflict
	// when a concurrent write landed first.
	UpdateAssetFields(ctx context.Context, req UpdateAssetFieldsRequest) (*Asset, error)

	// ReplaceThumbnail uploads a new thumbnail under a fresh key, points
	// the record at it, and only then removes the old blob.
	ReplaceThumbnail(ctx context.Context, req ReplaceThumbnailRequest) (*Asset, error)

	// DeleteAsset removes both blobs and then the metadata record.
	// Deleting an already-deleted asset succeeds.
	DeleteAsset(ctx context.Context, id uuid.UUID, callerEmail string) error
}
