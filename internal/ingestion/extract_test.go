package ingestion

import (
	"fmt"
	"strings"
	"testing"

	"github.com/contentflow/ingestAPI/internal/domain/commonModels"
)

func TestBuildExtractionPrompt_SkipList(t *testing.T) {
	skipItems := []commonModels.SkipItem{
		{Title: "Launch teaser", Date: "2026-09-01"},
		{Title: "Behind the scenes", Date: "2026-09-03"},
		{Title: "Giveaway", Date: "2026-09-05"},
	}

	prompt := buildExtractionPrompt(commonModels.DefaultStructureAnalysis(), "doc body", skipItems)

	for i, item := range skipItems {
		entry := fmt.Sprintf("%d. %q (%s)", i+1, item.Title, item.Date)
		if !strings.Contains(prompt, entry) {
			t.Errorf("prompt missing skip entry %q", entry)
		}
	}

	// entries must appear in input order
	first := strings.Index(prompt, "Launch teaser")
	second := strings.Index(prompt, "Behind the scenes")
	third := strings.Index(prompt, "Giveaway")
	if !(first < second && second < third) {
		t.Errorf("skip entries out of order: %d %d %d", first, second, third)
	}

	if !strings.Contains(prompt, "DO NOT re-extract") {
		t.Error("prompt missing the skip instruction")
	}
}

func TestBuildExtractionPrompt_NoSkipList(t *testing.T) {
	prompt := buildExtractionPrompt(commonModels.DefaultStructureAnalysis(), "doc body", nil)
	if strings.Contains(prompt, "DO NOT re-extract") {
		t.Error("skip instruction should be absent when there is nothing to skip")
	}
	if !strings.Contains(prompt, "doc body") {
		t.Error("prompt must carry the full document text")
	}
}

func TestParseExtractionResponse(t *testing.T) {
	valid := `{"documentType":"content_calendar",` +
		`"summary":{"documentType":"content_calendar","totalItems":2,"dateRange":{"start":"2026-09-01","end":"2026-09-08"},"platforms":["Instagram"],"insights":[]},` +
		`"contentItems":[` +
		`{"title":"A","description":"a","format":"Reel","date":"2026-09-01","platform":"Instagram","type":"post","hashtags":["#a"]},` +
		`{"title":"B","description":"b","format":"Story","date":"2026-09-08","platform":"Instagram","type":"post","hashtags":[]}]}`

	t.Run("valid response", func(t *testing.T) {
		result, err := parseExtractionResponse(valid)
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if len(result.ContentItems) != 2 || result.Outcome != commonModels.OutcomeSuccess {
			t.Errorf("unexpected result: %+v", result)
		}
		if result.Summary.TotalItems != 2 {
			t.Errorf("summary totalItems = %d; want 2", result.Summary.TotalItems)
		}
	})

	t.Run("fenced response", func(t *testing.T) {
		result, err := parseExtractionResponse("```json\n" + valid + "\n```")
		if err != nil {
			t.Fatalf("parse of fenced response failed: %v", err)
		}
		if len(result.ContentItems) != 2 {
			t.Errorf("expected 2 items, got %d", len(result.ContentItems))
		}
	})

	t.Run("valid json with wrong shape is an error", func(t *testing.T) {
		_, err := parseExtractionResponse(`{"documentType":"general"}`)
		if err == nil {
			t.Error("expected shape validation error")
		}
	})

	t.Run("broken response recovered via array substring", func(t *testing.T) {
		broken := `garbage before {"contentItems":[{"title":"C","date":"2026-09-02","hashtags":[]}] garbage after`
		result, err := parseExtractionResponse(broken)
		if err != nil {
			t.Fatalf("expected partial recovery, got error: %v", err)
		}
		if len(result.ContentItems) != 1 || result.ContentItems[0].Title != "C" {
			t.Errorf("unexpected recovered items: %+v", result.ContentItems)
		}
	})

	t.Run("unrecoverable response propagates error", func(t *testing.T) {
		_, err := parseExtractionResponse("not json at all")
		if err == nil {
			t.Error("expected error for unrecoverable response")
		}
	})
}

func TestAssembleResult_DerivedSummary(t *testing.T) {
	result := assembleResult(extractionResponse{
		DocumentType: "content_calendar",
		ContentItems: []commonModels.ContentItem{
			{Title: "A", Date: "2026-09-05", Platform: "Instagram"},
			{Title: "B", Date: "2026-09-01", Platform: "TikTok"},
			{Title: "C", Date: "2026-09-03", Platform: "Instagram"},
		},
	})

	if result.Summary.DateRange == nil ||
		result.Summary.DateRange.Start != "2026-09-01" ||
		result.Summary.DateRange.End != "2026-09-05" {
		t.Errorf("bad derived date range: %+v", result.Summary.DateRange)
	}
	if len(result.Summary.Platforms) != 2 {
		t.Errorf("expected 2 distinct platforms, got %v", result.Summary.Platforms)
	}
}
