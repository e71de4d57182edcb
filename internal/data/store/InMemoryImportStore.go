package store

import (
	"context"
	"sync"

	"github.com/contentflow/ingestAPI/internal/domain/commonModels"
)

type InMemoryImportStore struct {
	mu       sync.RWMutex
	imported map[string][]commonModels.SkipItem
}

func InitInMemoryImportStore() *InMemoryImportStore {
	return &InMemoryImportStore{
		imported: make(map[string][]commonModels.SkipItem),
	}
}

func (store *InMemoryImportStore) GetImportedItems(ctx context.Context, documentKey string) ([]commonModels.SkipItem, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	items := store.imported[documentKey]
	out := make([]commonModels.SkipItem, len(items))
	copy(out, items)
	return out, nil
}

func (store *InMemoryImportStore) AppendImportedItems(ctx context.Context, documentKey string, items []commonModels.ContentItem) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	for _, item := range items {
		store.imported[documentKey] = append(store.imported[documentKey], commonModels.SkipItem{
			Title: item.Title,
			Date:  item.Date,
		})
	}
	return nil
}
