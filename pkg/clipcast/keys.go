package clipcast

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

// NewAssetID produces a globally unique asset identifier. Identifiers are
// generated per creation attempt and never reused, so a retried create
// always yields a new asset.
func NewAssetID() uuid.UUID {
	return uuid.New()
}

// primaryBlobKey derives the blob key for an asset's main content,
// preserving the upload's file extension.
func primaryBlobKey(id uuid.UUID, fileName string) string {
	return id.String() + keyExt(fileName)
}

// thumbnailBlobKey derives the blob key for an asset's initial thumbnail.
func thumbnailBlobKey(id uuid.UUID, fileName string) string {
	return fmt.Sprintf("%s-thumbnail%s", id, keyExt(fileName))
}

// replacementThumbnailBlobKey derives a fresh key for a replacement
// thumbnail. The old key is never reused: the record must be able to
// reference old and new blobs under distinct keys while the swap is in
// flight.
func replacementThumbnailBlobKey(id uuid.UUID, fileName string) string {
	return fmt.Sprintf("%s-thumbnail-%s%s", id, uuid.New(), keyExt(fileName))
}

// keyExt extracts a safe file extension for use in a blob key
func keyExt(fileName string) string {
	ext := path.Ext(fileName)
	if strings.ContainsAny(ext, "/\\?#%") {
		return ""
	}
	return ext
}
