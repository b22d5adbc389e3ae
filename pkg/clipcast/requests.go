package clipcast

import (
	"errors"
	"io"

	"github.com/google/uuid"
)

// BlobPayload carries one uploaded file into the service
type BlobPayload struct {
	Reader      io.Reader
	ContentType string
	FileName    string // used only for its extension when deriving blob keys
}

// CreateAssetRequest contains parameters for publishing a new asset
type CreateAssetRequest struct {
	OwnerEmail  string
	Title       string
	Description string
	Author      string
	Quality     string
	Video       BlobPayload
	Thumbnail   BlobPayload
}

// Validate checks the request before any remote call is made
func (r CreateAssetRequest) Validate() error {
	if r.OwnerEmail == "" {
		return errors.New("owner email is required")
	}
	if r.Title == "" {
		return errors.New("title is required")
	}
	if r.Video.Reader == nil {
		return errors.New("video payload is required")
	}
	if r.Thumbnail.Reader == nil {
		return errors.New("thumbnail payload is required")
	}
	return nil
}

// UpdateAssetFieldsRequest contains a partial edit of an asset's display
// metadata. Nil fields are left unchanged.
type UpdateAssetFieldsRequest struct {
	AssetID     uuid.UUID
	CallerEmail string
	Title       *string
	Description *string
	Author      *string
	Quality     *string
}

// ReplaceThumbnailRequest contains parameters for swapping an asset's
// thumbnail blob
type ReplaceThumbnailRequest struct {
	AssetID     uuid.UUID
	CallerEmail string
	Thumbnail   BlobPayload
}

// ListAssetsRequest filters the catalog listing. Query is a
// case-insensitive substring match over title, description and author;
// OwnerEmail is an exact match. Both empty lists everything.
type ListAssetsRequest struct {
	Query      string
	OwnerEmail string
}
