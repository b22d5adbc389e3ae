package clipcast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clipcast/clipcast/pkg/clipcast/urlstrategy"
)

// blobDeleteAttempts bounds retries of idempotent blob deletes before the
// surviving blob is logged as an orphan and the operation moves on.
const blobDeleteAttempts = 3

// service implements the Service interface
type service struct {
	repository Repository
	blobs      BlobStore
	urls       urlstrategy.Resolver
	logger     *slog.Logger
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the metadata repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithBlobStore sets the blob storage backend for the service
func WithBlobStore(store BlobStore) Option {
	return func(s *service) {
		s.blobs = store
	}
}

// WithURLResolver sets the access URL resolver for the service
func WithURLResolver(resolver urlstrategy.Resolver) Option {
	return func(s *service) {
		s.urls = resolver
	}
}

// WithLogger sets the logger used for orphan and compensation warnings
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		s.logger = logger
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.blobs == nil {
		return nil, fmt.Errorf("blob store is required")
	}
	if s.urls == nil {
		return nil, fmt.Errorf("URL resolver is required")
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s, nil
}

func (s *service) CreateAsset(ctx context.Context, req CreateAssetRequest) (*Asset, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := NewAssetID()
	primaryKey := primaryBlobKey(id, req.Video.FileName)
	thumbKey := thumbnailBlobKey(id, req.Thumbnail.FileName)

	if err := s.blobs.Upload(ctx, primaryKey, req.Video.Reader, req.Video.ContentType); err != nil {
		return nil, &AssetError{AssetID: id, Op: "create",
			Err: &StorageError{Key: primaryKey, Op: "upload", Err: err}}
	}

	if err := s.blobs.Upload(ctx, thumbKey, req.Thumbnail.Reader, req.Thumbnail.ContentType); err != nil {
		s.removeBlobs(ctx, id, "create", primaryKey)
		return nil, &AssetError{AssetID: id, Op: "create",
			Err: &StorageError{Key: thumbKey, Op: "upload", Err: err}}
	}

	quality := req.Quality
	if quality == "" {
		quality = DefaultQuality
	}

	asset := &Asset{
		ID:           id,
		OwnerEmail:   req.OwnerEmail,
		Title:        req.Title,
		Description:  req.Description,
		Author:       req.Author,
		Quality:      quality,
		PrimaryKey:   primaryKey,
		ThumbnailKey: thumbKey,
		CreatedAt:    time.Now().UTC(),
		Version:      1,
	}

	if err := s.repository.CreateAsset(ctx, asset); err != nil {
		// Both just-written blobs are unreferenced; remove them so a failed
		// create leaves no trace.
		s.removeBlobs(ctx, id, "create", primaryKey, thumbKey)
		return nil, &AssetError{AssetID: id, Op: "create", Err: err}
	}

	return asset, nil
}

func (s *service) GetAsset(ctx context.Context, id uuid.UUID) (*AssetView, error) {
	asset, err := s.repository.GetAsset(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.resolveView(ctx, asset)
}

func (s *service) ListAssets(ctx context.Context, req ListAssetsRequest) ([]*AssetView, error) {
	assets, err := s.repository.ListAssets(ctx)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(req.Query)
	views := make([]*AssetView, 0, len(assets))
	for _, asset := range assets {
		if req.OwnerEmail != "" && asset.OwnerEmail != req.OwnerEmail {
			continue
		}
		if query != "" && !matchesQuery(asset, query) {
			continue
		}
		view, err := s.resolveView(ctx, asset)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	return views, nil
}

func (s *service) UpdateAssetFields(ctx context.Context, req UpdateAssetFieldsRequest) (*Asset, error) {
	current, err := s.repository.GetAsset(ctx, req.AssetID)
	if err != nil {
		return nil, err
	}

	if current.OwnerEmail != req.CallerEmail {
		return nil, &AssetError{AssetID: req.AssetID, Op: "update_fields", Err: ErrForbidden}
	}

	updated := *current
	if req.Title != nil {
		updated.Title = *req.Title
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Author != nil {
		updated.Author = *req.Author
	}
	if req.Quality != nil {
		updated.Quality = *req.Quality
	}
	updated.Version = current.Version + 1

	if err := s.repository.UpdateAsset(ctx, &updated, current.Version); err != nil {
		return nil, &AssetError{AssetID: req.AssetID, Op: "update_fields", Err: err}
	}

	return &updated, nil
}

func (s *service) ReplaceThumbnail(ctx context.Context, req ReplaceThumbnailRequest) (*Asset, error) {
	if req.Thumbnail.Reader == nil {
		return nil, errors.New("thumbnail payload is required")
	}

	current, err := s.repository.GetAsset(ctx, req.AssetID)
	if err != nil {
		return nil, err
	}

	if current.OwnerEmail != req.CallerEmail {
		return nil, &AssetError{AssetID: req.AssetID, Op: "replace_thumbnail", Err: ErrForbidden}
	}

	newKey := replacementThumbnailBlobKey(current.ID, req.Thumbnail.FileName)

	if err := s.blobs.Upload(ctx, newKey, req.Thumbnail.Reader, req.Thumbnail.ContentType); err != nil {
		return nil, &AssetError{AssetID: req.AssetID, Op: "replace_thumbnail",
			Err: &StorageError{Key: newKey, Op: "upload", Err: err}}
	}

	updated := *current
	updated.ThumbnailKey = newKey
	updated.Version = current.Version + 1

	if err := s.repository.UpdateAsset(ctx, &updated, current.Version); err != nil {
		s.removeBlobs(ctx, current.ID, "replace_thumbnail", newKey)
		return nil, &AssetError{AssetID: req.AssetID, Op: "replace_thumbnail", Err: err}
	}

	// The record now names the new blob; the old one is unreferenced. A
	// failed delete leaves an orphan, never a dangling reference.
	s.removeBlobs(ctx, current.ID, "replace_thumbnail", current.ThumbnailKey)

	return &updated, nil
}

func (s *service) DeleteAsset(ctx context.Context, id uuid.UUID, callerEmail string) error {
	current, err := s.repository.GetAsset(ctx, id)
	if errors.Is(err, ErrAssetNotFound) {
		// Already gone; deletion is idempotent
		return nil
	}
	if err != nil {
		return &AssetError{AssetID: id, Op: "delete", Err: err}
	}

	if current.OwnerEmail != callerEmail {
		return &AssetError{AssetID: id, Op: "delete", Err: ErrForbidden}
	}

	// Blobs go first: if this fails partway the record stays readable and
	// still references existing blobs. Exhausted retries are logged as
	// orphans and the record is removed regardless, so the asset always
	// disappears from the catalog.
	s.removeBlobs(ctx, id, "delete", current.PrimaryKey, current.ThumbnailKey)

	if err := s.repository.DeleteAsset(ctx, id); err != nil {
		return &AssetError{AssetID: id, Op: "delete", Err: err}
	}

	return nil
}

// resolveView resolves both blob keys of an asset to access URLs
func (s *service) resolveView(ctx context.Context, asset *Asset) (*AssetView, error) {
	videoURL, err := s.urls.ResolveURL(ctx, asset.PrimaryKey)
	if err != nil {
		return nil, &AssetError{AssetID: asset.ID, Op: "resolve_url", Err: err}
	}
	thumbnailURL, err := s.urls.ResolveURL(ctx, asset.ThumbnailKey)
	if err != nil {
		return nil, &AssetError{AssetID: asset.ID, Op: "resolve_url", Err: err}
	}

	return &AssetView{
		Asset:        *asset,
		VideoURL:     videoURL,
		ThumbnailURL: thumbnailURL,
	}, nil
}

// removeBlobs deletes blobs that no metadata record references anymore,
// retrying each delete before giving up. A blob that survives every
// attempt is logged as an orphan for out-of-band cleanup; it never changes
// the outcome of the operation that called us.
func (s *service) removeBlobs(ctx context.Context, id uuid.UUID, op string, keys ...string) {
	for _, key := range keys {
		var err error
		for attempt := 0; attempt < blobDeleteAttempts; attempt++ {
			if err = s.blobs.Delete(ctx, key); err == nil {
				break
			}
		}
		if err != nil {
			s.logger.Warn("orphaned blob left behind",
				"asset_id", id, "op", op, "key", key, "error", err)
		}
	}
}

// matchesQuery reports whether the lowercased query occurs in any of the
// asset's searchable fields
func matchesQuery(asset *Asset, query string) bool {
	return strings.Contains(strings.ToLower(asset.Title), query) ||
		strings.Contains(strings.ToLower(asset.Description), query) ||
		strings.Contains(strings.ToLower(asset.Author), query)
}
