package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/clipcast/clipcast/pkg/clipcast"
)

// Repository implements clipcast.Repository using in-memory storage.
// Conditioned writes are serialized by the mutex, mirroring the atomic
// conditional put a production metadata store provides.
type Repository struct {
	mu     sync.RWMutex
	assets map[uuid.UUID]*clipcast.Asset
}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		assets: make(map[uuid.UUID]*clipcast.Asset),
	}
}

func (r *Repository) CreateAsset(ctx context.Context, asset *clipcast.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.assets[asset.ID]; exists {
		return fmt.Errorf("asset %s already exists", asset.ID)
	}

	// Store a copy to avoid external modifications
	assetCopy := *asset
	r.assets[asset.ID] = &assetCopy

	return nil
}

func (r *Repository) GetAsset(ctx context.Context, id uuid.UUID) (*clipcast.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	asset, exists := r.assets[id]
	if !exists {
		return nil, clipcast.ErrAssetNotFound
	}

	assetCopy := *asset
	return &assetCopy, nil
}

func (r *Repository) UpdateAsset(ctx context.Context, asset *clipcast.Asset, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.assets[asset.ID]
	if !exists {
		return clipcast.ErrAssetNotFound
	}

	if stored.Version != expectedVersion {
		return clipcast.ErrVersionConflict
	}

	assetCopy := *asset
	r.assets[asset.ID] = &assetCopy

	return nil
}

func (r *Repository) DeleteAsset(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.assets, id)
	return nil
}

func (r *Repository) ListAssets(ctx context.Context) ([]*clipcast.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*clipcast.Asset, 0, len(r.assets))
	for _, asset := range r.assets {
		assetCopy := *asset
		result = append(result, &assetCopy)
	}

	// Sort by created_at descending
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}
