package ingestion_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/contentflow/ingestAPI/internal/config"
	"github.com/contentflow/ingestAPI/internal/domain/commonModels"
	"github.com/contentflow/ingestAPI/internal/domain/jobModel"
	"github.com/contentflow/ingestAPI/internal/ingestion"
	"github.com/contentflow/ingestAPI/internal/ingestion/llm"
)

const calendarCSV = "Date,Format,Caption,Visual,CTA\n" +
	"2026-09-01,Reel,Launch day,product shot,Shop now\n" +
	"2026-09-02,Story,Recap,collage,Link in bio\n"

func writeTempDoc(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test document: %v", err)
	}
	return path
}

func newJob(docName string, docPath string, mode string) jobModel.Job {
	return jobModel.Job{
		Id:          "test-job",
		DocumentKey: strings.ToLower(docName),
		JobPayload: jobModel.JobPayload{
			IngestFileName: docName,
			IngestURL:      docPath,
			ClassifierMode: mode,
		},
	}
}

func testModels() ingestion.Models {
	return ingestion.Models{Structure: "fast-tier", Extraction: "main-tier"}
}

func testCtx() context.Context {
	return context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
}

func TestIngestDocument_ModelPipeline_Success(t *testing.T) {
	docPath := writeTempDoc(t, "september.csv", calendarCSV)

	// response arrives in three deltas; the service must accumulate them in
	// order before parsing
	chunks := []string{
		`{"documentType":"content_calendar","content`,
		`Items":[{"title":"Launch day","description":"Launch day","format":"Reel","date":"2026-09-01","platform":"Instagram","type":"post","hashtags":[]},`,
		`{"title":"Recap","description":"Recap","format":"Story","date":"2026-09-02","platform":"Instagram","type":"post","hashtags":[]}]}`,
	}

	mLLM := &MockProvider{
		OnCompleteStream: func(ctx context.Context, req llm.Request, onDelta func(delta string)) error {
			for _, chunk := range chunks {
				onDelta(chunk)
			}
			return nil
		},
	}
	mImports := &MockImportStore{}

	s := ingestion.NewService(mLLM, mImports, testModels())
	result := s.IngestDocument(testCtx(), newJob("september.csv", docPath, ""))

	if result.Status != jobModel.JobStatusComplete {
		t.Fatalf("Status got %v, want %v (error: %+v)", result.Status, jobModel.JobStatusComplete, result.Error)
	}
	ingested := result.JobPayload.Result
	if ingested == nil {
		t.Fatal("expected a non-nil ingestion result")
	}
	if ingested.Outcome != commonModels.OutcomeSuccess {
		t.Errorf("Outcome got %v, want %v", ingested.Outcome, commonModels.OutcomeSuccess)
	}
	if len(ingested.ContentItems) != 2 {
		t.Errorf("expected 2 content items, got %d", len(ingested.ContentItems))
	}
	if ingested.Summary.TotalItems != 2 {
		t.Errorf("summary totalItems got %d, want 2", ingested.Summary.TotalItems)
	}
	if len(mImports.Appended) != 2 {
		t.Errorf("expected 2 items recorded in import store, got %d", len(mImports.Appended))
	}
	if _, err := os.Stat(docPath); !os.IsNotExist(err) {
		t.Error("temp document should be removed after a successful run")
	}
}

func TestIngestDocument_DegradedFallback(t *testing.T) {
	docPath := writeTempDoc(t, "notes.csv", "line one\nline two\nline three\n")

	mLLM := &MockProvider{
		OnCompleteStream: func(ctx context.Context, req llm.Request, onDelta func(delta string)) error {
			return errors.New("provider down")
		},
	}

	s := ingestion.NewService(mLLM, &MockImportStore{}, testModels())
	result := s.IngestDocument(testCtx(), newJob("notes.csv", docPath, ""))

	if result.Status != jobModel.JobStatusComplete {
		t.Fatalf("degraded run must still complete, got %v", result.Status)
	}
	ingested := result.JobPayload.Result
	if ingested.Outcome != commonModels.OutcomeDegraded {
		t.Fatalf("Outcome got %v, want %v", ingested.Outcome, commonModels.OutcomeDegraded)
	}
	if ingested.DegradedReason == "" {
		t.Error("degraded result must carry the failure reason")
	}
	if len(ingested.ContentItems) != 3 {
		t.Fatalf("expected 3 line-split items, got %d", len(ingested.ContentItems))
	}

	today := time.Now().Format("2006-01-02")
	first := ingested.ContentItems[0]
	if first.Title != "Section 1" || first.Description != "line one" {
		t.Errorf("unexpected first fallback item: %+v", first)
	}
	if first.Format != config.FallbackItemFormat || first.Date != today {
		t.Errorf("fallback item format/date got %q/%q", first.Format, first.Date)
	}
}

func TestIngestDocument_StructurePassFallsBackToDefault(t *testing.T) {
	docPath := writeTempDoc(t, "september.csv", calendarCSV)

	var extractionPrompt string
	mLLM := &MockProvider{
		OnComplete: func(ctx context.Context, req llm.Request) (string, error) {
			return "this is not json", nil
		},
		OnCompleteStream: func(ctx context.Context, req llm.Request, onDelta func(delta string)) error {
			extractionPrompt = req.Prompt
			onDelta(`{"documentType":"general","contentItems":[]}`)
			return nil
		},
	}

	s := ingestion.NewService(mLLM, &MockImportStore{}, testModels())
	result := s.IngestDocument(testCtx(), newJob("september.csv", docPath, ""))

	if result.Status != jobModel.JobStatusComplete {
		t.Fatalf("Status got %v, want %v", result.Status, jobModel.JobStatusComplete)
	}
	// pass 2 must run against the default structure, not fail
	if !strings.Contains(extractionPrompt, "CTA") || !strings.Contains(extractionPrompt, "Caption") {
		t.Error("extraction prompt should carry the default structure columns")
	}
	if result.JobPayload.Result.ContentItems == nil {
		t.Error("contentItems must never be nil, even when empty")
	}
}

func TestIngestDocument_SkipListFiltersDuplicates(t *testing.T) {
	docPath := writeTempDoc(t, "september.csv", calendarCSV)

	var extractionPrompt string
	mLLM := &MockProvider{
		OnCompleteStream: func(ctx context.Context, req llm.Request, onDelta func(delta string)) error {
			extractionPrompt = req.Prompt
			// the model ignored the skip instruction and re-extracted "Launch day"
			onDelta(`{"documentType":"content_calendar","contentItems":[` +
				`{"title":"Launch day","description":"d","format":"Reel","date":"2026-09-01","platform":"Instagram","type":"post","hashtags":[]},` +
				`{"title":"Recap","description":"d","format":"Story","date":"2026-09-02","platform":"Instagram","type":"post","hashtags":[]}]}`)
			return nil
		},
	}
	mImports := &MockImportStore{
		OnGetImportedItems: func(ctx context.Context, documentKey string) ([]commonModels.SkipItem, error) {
			return []commonModels.SkipItem{{Title: "Launch day", Date: "2026-09-01"}}, nil
		},
	}

	s := ingestion.NewService(mLLM, mImports, testModels())
	result := s.IngestDocument(testCtx(), newJob("september.csv", docPath, ""))

	if !strings.Contains(extractionPrompt, `1. "Launch day" (2026-09-01)`) {
		t.Error("skip list entry missing from extraction prompt")
	}

	ingested := result.JobPayload.Result
	if len(ingested.ContentItems) != 1 || ingested.ContentItems[0].Title != "Recap" {
		t.Fatalf("duplicate should be filtered out, got %+v", ingested.ContentItems)
	}
	if ingested.Summary.TotalItems != 1 {
		t.Errorf("summary totalItems got %d, want 1", ingested.Summary.TotalItems)
	}
	if len(mImports.Appended) != 1 || mImports.Appended[0].Title != "Recap" {
		t.Errorf("only the new item should be recorded, got %+v", mImports.Appended)
	}
}

func TestIngestDocument_RuleMode(t *testing.T) {
	docPath := writeTempDoc(t, "september_calendar.csv", calendarCSV)

	mLLM := &MockProvider{
		OnComplete: func(ctx context.Context, req llm.Request) (string, error) {
			t.Error("rule mode must not call the completion provider")
			return "", nil
		},
		OnCompleteStream: func(ctx context.Context, req llm.Request, onDelta func(delta string)) error {
			t.Error("rule mode must not call the streaming provider")
			return nil
		},
	}

	s := ingestion.NewService(mLLM, &MockImportStore{}, testModels())
	result := s.IngestDocument(testCtx(), newJob("september_calendar.csv", docPath, "rule"))

	if result.Status != jobModel.JobStatusComplete {
		t.Fatalf("Status got %v, want %v", result.Status, jobModel.JobStatusComplete)
	}
	ingested := result.JobPayload.Result
	if ingested.DocumentType != string(commonModels.DocContentCalendar) {
		t.Errorf("DocumentType got %q, want %q", ingested.DocumentType, commonModels.DocContentCalendar)
	}
	if len(ingested.ContentItems) != 2 {
		t.Errorf("expected one item per data row, got %d", len(ingested.ContentItems))
	}
}

func TestIngestDocument_Failures(t *testing.T) {
	tests := []struct {
		name        string
		docName     string
		docPath     string
		expectedErr string
		canRetry    bool
	}{
		{
			name:        "Unsupported_Format",
			docName:     "archive.zip",
			docPath:     "archive.zip",
			expectedErr: "UNSUPPORTED_FORMAT",
			canRetry:    false,
		},
		{
			name:        "Read_Failure",
			docName:     "missing.csv",
			docPath:     filepath.Join(os.TempDir(), "does-not-exist", "missing.csv"),
			expectedErr: "DOCUMENT_READ_FAILURE",
			canRetry:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ingestion.NewService(&MockProvider{}, &MockImportStore{}, testModels())
			result := s.IngestDocument(testCtx(), newJob(tt.docName, tt.docPath, ""))

			if result.Status != jobModel.JobStatusError {
				t.Fatalf("Status got %v, want %v", result.Status, jobModel.JobStatusError)
			}
			if result.Error.Message != tt.expectedErr {
				t.Errorf("Error got %q, want %q", result.Error.Message, tt.expectedErr)
			}
			if result.Error.Retry != tt.canRetry {
				t.Errorf("Retry got %v, want %v", result.Error.Retry, tt.canRetry)
			}
		})
	}
}
