package store

import (
	"context"
	"encoding/json"

	"github.com/contentflow/ingestAPI/internal/config"
	"github.com/contentflow/ingestAPI/internal/data/redisStore"
	"github.com/contentflow/ingestAPI/internal/domain/commonModels"
	"github.com/contentflow/ingestAPI/pkg/logger_i"
)

// RedisImportStore keeps one list per document key, each entry a marshalled
// {title, date} pair. That is all the next run needs to build its skip list.
type RedisImportStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisImportStore(ctx context.Context) *RedisImportStore {
	inner := redisStore.GetRedisStore(ctx, config.RedisImportStore)
	if inner == nil {
		return nil
	}
	return &RedisImportStore{
		store:  inner,
		logger: logger_i.NewLogger("ImportStore"),
	}
}

func (s *RedisImportStore) GetImportedItems(ctx context.Context, documentKey string) ([]commonModels.SkipItem, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "documentKey", documentKey)

	entries, err := s.store.ListGetAll(ctx, documentKey)
	if s.store.IsNil(err) {
		return nil, nil
	}
	if err != nil {
		log.Error("Failed to read imported items", "error", err)
		return nil, err
	}

	items := make([]commonModels.SkipItem, 0, len(entries))
	for _, entry := range entries {
		var item commonModels.SkipItem
		if err := json.Unmarshal([]byte(entry), &item); err != nil {
			// one bad entry should not hide the rest of the history
			log.Error("Skipping unreadable import entry", "error", err)
			continue
		}
		items = append(items, item)
	}
	log.Debug("Loaded imported items", "count", len(items))
	return items, nil
}

func (s *RedisImportStore) AppendImportedItems(ctx context.Context, documentKey string, items []commonModels.ContentItem) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "documentKey", documentKey)

	entries := make([]interface{}, 0, len(items))
	for _, item := range items {
		data, err := json.Marshal(commonModels.SkipItem{Title: item.Title, Date: item.Date})
		if err != nil {
			return err
		}
		entries = append(entries, data)
	}
	if len(entries) == 0 {
		return nil
	}

	if err := s.store.ListPush(ctx, documentKey, entries...); err != nil {
		log.Error("Failed to append imported items", "error", err)
		return err
	}
	if err := s.store.Expire(ctx, documentKey, config.RedisImportStoreTTL); err != nil {
		log.Error("Failed to refresh import list TTL", "error", err)
	}
	log.Debug("Recorded imported items", "count", len(entries))
	return nil
}

func TestImportStore(store *redisStore.Store) *RedisImportStore {
	return &RedisImportStore{
		store:  store,
		logger: logger_i.NewLogger("test redis"),
	}
}
