package clipcast

import (
	"time"

	"github.com/google/uuid"
)

// DefaultQuality is recorded when an upload does not declare a quality label.
const DefaultQuality = "Unknown"

// Asset is one published video item: a primary content blob, a thumbnail
// blob, and this metadata record tying them together.
//
// ID and OwnerEmail are immutable after creation. PrimaryKey changes only
// by deleting and recreating the asset; ThumbnailKey is replaced as a
// unit via Service.ReplaceThumbnail. Version increments on every
// successful metadata write and is the optimistic-concurrency token for
// conditioned writes.
type Asset struct {
	ID           uuid.UUID `json:"id"`
	OwnerEmail   string    `json:"owner_email"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Author       string    `json:"author"`
	Quality      string    `json:"quality"`
	PrimaryKey   string    `json:"primary_key"`
	ThumbnailKey string    `json:"thumbnail_key"`
	CreatedAt    time.Time `json:"created_at"`
	Version      int64     `json:"version"`
}

// AssetView is an Asset whose blob keys have been resolved to access URLs.
type AssetView struct {
	Asset
	VideoURL     string `json:"video_url"`
	ThumbnailURL string `json:"thumbnail_url"`
}
