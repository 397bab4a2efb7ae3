package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/dkasturi/docuchat/internal/adapter/utils"
	"github.com/dkasturi/docuchat/internal/domain/assetModel"
	"github.com/dkasturi/docuchat/internal/domain/commonModels"
)

// InMemoryAssetStore is the fallback document collection when Qdrant is
// offline, and the store tests substitute.
type InMemoryAssetStore struct {
	lock   *sync.RWMutex
	assets map[string]assetModel.Asset
}

func InitInMemoryAssetStore() *InMemoryAssetStore {
	return &InMemoryAssetStore{
		lock:   new(sync.RWMutex),
		assets: make(map[string]assetModel.Asset),
	}
}

func (store *InMemoryAssetStore) Add(ctx context.Context, content assetModel.AssetContent) (string, error) {
	store.lock.Lock()
	defer store.lock.Unlock()

	assetId := utils.GetNewUUID()
	// a v4 collision is negligible, but an overwrite must never be silent
	if _, exists := store.assets[assetId]; exists {
		return "", fmt.Errorf("asset id collision: %s", assetId)
	}
	store.assets[assetId] = assetModel.Asset{Id: assetId, Content: content}
	return assetId, nil
}

func (store *InMemoryAssetStore) Get(ctx context.Context, assetId string) (assetModel.Asset, error) {
	store.lock.RLock()
	defer store.lock.RUnlock()
	asset, found := store.assets[assetId]
	if !found {
		return assetModel.Asset{}, fmt.Errorf("%w: unknown asset id", commonModels.ErrNotFound)
	}
	return asset, nil
}
