package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipcast/clipcast/pkg/clipcast"
)

func sampleAsset(owner string) *clipcast.Asset {
	id := uuid.New()
	return &clipcast.Asset{
		ID:           id,
		OwnerEmail:   owner,
		Title:        "sample",
		Quality:      clipcast.DefaultQuality,
		PrimaryKey:   id.String() + ".mp4",
		ThumbnailKey: id.String() + "-thumbnail.png",
		CreatedAt:    time.Now().UTC(),
		Version:      1,
	}
}

func TestCreateAndGetAsset(t *testing.T) {
	repo := New()
	ctx := context.Background()

	asset := sampleAsset("owner@example.com")
	require.NoError(t, repo.CreateAsset(ctx, asset))

	got, err := repo.GetAsset(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, asset.Title, got.Title)
	assert.Equal(t, asset.Version, got.Version)

	// The repository hands out copies, not its own pointers
	got.Title = "mutated"
	again, err := repo.GetAsset(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, "sample", again.Title)
}

func TestCreateAssetDuplicate(t *testing.T) {
	repo := New()
	ctx := context.Background()

	asset := sampleAsset("owner@example.com")
	require.NoError(t, repo.CreateAsset(ctx, asset))
	assert.Error(t, repo.CreateAsset(ctx, asset))
}

func TestGetAssetNotFound(t *testing.T) {
	repo := New()

	_, err := repo.GetAsset(context.Background(), uuid.New())
	assert.ErrorIs(t, err, clipcast.ErrAssetNotFound)
}

func TestUpdateAssetConditioned(t *testing.T) {
	repo := New()
	ctx := context.Background()

	asset := sampleAsset("owner@example.com")
	require.NoError(t, repo.CreateAsset(ctx, asset))

	updated := *asset
	updated.Title = "edited"
	updated.Version = 2
	require.NoError(t, repo.UpdateAsset(ctx, &updated, 1))

	got, err := repo.GetAsset(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Title)
	assert.Equal(t, int64(2), got.Version)

	// A second writer holding the original version loses
	late := *asset
	late.Title = "stale edit"
	late.Version = 2
	err = repo.UpdateAsset(ctx, &late, 1)
	assert.ErrorIs(t, err, clipcast.ErrVersionConflict)

	got, err = repo.GetAsset(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Title, "losing write changes nothing")
}

func TestUpdateAssetNotFound(t *testing.T) {
	repo := New()

	ghost := sampleAsset("owner@example.com")
	err := repo.UpdateAsset(context.Background(), ghost, 1)
	assert.ErrorIs(t, err, clipcast.ErrAssetNotFound)
}

func TestDeleteAssetIdempotent(t *testing.T) {
	repo := New()
	ctx := context.Background()

	asset := sampleAsset("owner@example.com")
	require.NoError(t, repo.CreateAsset(ctx, asset))

	require.NoError(t, repo.DeleteAsset(ctx, asset.ID))
	_, err := repo.GetAsset(ctx, asset.ID)
	assert.ErrorIs(t, err, clipcast.ErrAssetNotFound)

	// Deleting again, or deleting an unknown id, still succeeds
	require.NoError(t, repo.DeleteAsset(ctx, asset.ID))
	require.NoError(t, repo.DeleteAsset(ctx, uuid.New()))
}

func TestListAssetsOrdering(t *testing.T) {
	repo := New()
	ctx := context.Background()

	older := sampleAsset("a@example.com")
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	newer := sampleAsset("b@example.com")

	require.NoError(t, repo.CreateAsset(ctx, older))
	require.NoError(t, repo.CreateAsset(ctx, newer))

	assets, err := repo.ListAssets(ctx)
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, newer.ID, assets[0].ID, "newest first")
	assert.Equal(t, older.ID, assets[1].ID)
}
