package ingestion_test

import (
	"context"

	"github.com/contentflow/ingestAPI/internal/domain/commonModels"
	"github.com/contentflow/ingestAPI/internal/ingestion/llm"
)

// MockProvider implements llm.Provider
type MockProvider struct {
	// Control fields to simulate different behaviors
	OnComplete       func(ctx context.Context, req llm.Request) (string, error)
	OnCompleteStream func(ctx context.Context, req llm.Request, onDelta func(delta string)) error
}

func (m *MockProvider) Complete(ctx context.Context, req llm.Request) (string, error) {
	if m.OnComplete != nil {
		return m.OnComplete(ctx, req)
	}
	return `{"documentType":"content_calendar","structure":{"format":"CSV","hasHeaders":true,"columns":["Date","Caption"]},"insights":[],"recommendations":[]}`, nil
}

func (m *MockProvider) CompleteStream(ctx context.Context, req llm.Request, onDelta func(delta string)) error {
	if m.OnCompleteStream != nil {
		return m.OnCompleteStream(ctx, req, onDelta)
	}
	onDelta(`{"documentType":"content_calendar","contentItems":[]}`)
	return nil
}

// MockImportStore implements jobModel.ImportStore
type MockImportStore struct {
	OnGetImportedItems    func(ctx context.Context, documentKey string) ([]commonModels.SkipItem, error)
	OnAppendImportedItems func(ctx context.Context, documentKey string, items []commonModels.ContentItem) error

	Appended []commonModels.ContentItem
}

func (m *MockImportStore) GetImportedItems(ctx context.Context, documentKey string) ([]commonModels.SkipItem, error) {
	if m.OnGetImportedItems != nil {
		return m.OnGetImportedItems(ctx, documentKey)
	}
	return nil, nil
}

func (m *MockImportStore) AppendImportedItems(ctx context.Context, documentKey string, items []commonModels.ContentItem) error {
	m.Appended = append(m.Appended, items...)
	if m.OnAppendImportedItems != nil {
		return m.OnAppendImportedItems(ctx, documentKey, items)
	}
	return nil
}
