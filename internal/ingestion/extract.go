package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/contentflow/ingestAPI/internal/config"
	"github.com/contentflow/ingestAPI/internal/domain/commonModels"
	"github.com/contentflow/ingestAPI/internal/ingestion/llm"
	"github.com/contentflow/ingestAPI/internal/metrics"
)

const extractionSystemPrompt = `You are a content extraction engine for a social media content calendar. ` +
	`You respond with strict JSON only - no prose, no markdown fences. ` +
	`The JSON must have this exact shape: ` +
	`{"documentType": string, "summary": {"documentType": string, "totalItems": number, ` +
	`"dateRange": {"start": string, "end": string} | null, "platforms": string[], "insights": string[]}, ` +
	`"contentItems": [{"title": string, "description": string, "format": string, ` +
	`"date": "YYYY-MM-DD", "platform": string, "type": string, "hashtags": string[]}]} ` +
	`Process every row of the document, not a sample. Preserve source order.`

type extractionResponse struct {
	DocumentType string                     `json:"documentType"`
	Summary      commonModels.Summary       `json:"summary"`
	ContentItems []commonModels.ContentItem `json:"contentItems"`
}

// extractContent is pass 2. The response arrives as a delta stream that is
// accumulated in arrival order into one buffer before any parsing happens.
// Errors propagate to the orchestrator, which owns the degraded fallback.
func (s *service) extractContent(ctx context.Context, analysis commonModels.StructureAnalysis, text string, skipItems []commonModels.SkipItem) (commonModels.IngestionResult, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("content_extraction", time.Since(start)) }()

	callCtx, cancel := context.WithTimeout(ctx, config.ExtractionCallTimeout)
	defer cancel()

	var buffer strings.Builder
	err := s.llm.CompleteStream(callCtx, llm.Request{
		Model:           s.models.Extraction,
		System:          extractionSystemPrompt,
		Prompt:          buildExtractionPrompt(analysis, text, skipItems),
		MaxOutputTokens: config.ExtractionMaxOutputTokens,
	}, func(delta string) {
		buffer.WriteString(delta)
	})
	if err != nil {
		return commonModels.IngestionResult{}, fmt.Errorf("extraction call failed: %w", err)
	}

	return parseExtractionResponse(buffer.String())
}

func buildExtractionPrompt(analysis commonModels.StructureAnalysis, text string, skipItems []commonModels.SkipItem) string {
	var prompt strings.Builder

	structureJSON, _ := json.Marshal(analysis.Structure)
	prompt.WriteString("Extract every content item from the document below.\n\n")
	prompt.WriteString(fmt.Sprintf("Document type (from structure analysis): %s\n", analysis.DocumentType))
	prompt.WriteString(fmt.Sprintf("Document structure: %s\n\n", structureJSON))

	if len(skipItems) > 0 {
		prompt.WriteString("The following items were already processed in a previous import. DO NOT re-extract them:\n")
		for i, item := range skipItems {
			prompt.WriteString(fmt.Sprintf("%d. %q (%s)\n", i+1, item.Title, item.Date))
		}
		prompt.WriteString("\n")
	}

	prompt.WriteString("Document content (process every row):\n")
	prompt.WriteString(text)
	return prompt.String()
}

// parseExtractionResponse validates shape, not just syntax: valid JSON with
// no contentItems array goes down the same repair/fallback path as a syntax
// error.
func parseExtractionResponse(raw string) (commonModels.IngestionResult, error) {
	cleaned := stripCodeFences(raw)

	var parsed extractionResponse
	err := json.Unmarshal([]byte(cleaned), &parsed)
	if err == nil && parsed.ContentItems != nil {
		return assembleResult(parsed), nil
	}
	if err == nil {
		err = fmt.Errorf("extraction response missing contentItems array")
	}

	if items, ok := recoverContentItems(raw); ok {
		return assembleResult(extractionResponse{
			DocumentType: string(commonModels.DocGeneral),
			ContentItems: items,
		}), nil
	}

	return commonModels.IngestionResult{}, fmt.Errorf("extraction response unparseable: %w", err)
}

func assembleResult(parsed extractionResponse) commonModels.IngestionResult {
	items := parsed.ContentItems
	if items == nil {
		items = []commonModels.ContentItem{}
	}

	summary := parsed.Summary
	if summary.DocumentType == "" {
		summary.DocumentType = parsed.DocumentType
	}
	summary.TotalItems = len(items)
	if summary.Platforms == nil {
		summary.Platforms = platformsOf(items)
	}
	if summary.Insights == nil {
		summary.Insights = []string{}
	}
	if summary.DateRange == nil {
		summary.DateRange = dateRangeOf(items)
	}

	return commonModels.IngestionResult{
		DocumentType: parsed.DocumentType,
		Summary:      summary,
		ContentItems: items,
		Outcome:      commonModels.OutcomeSuccess,
	}
}

func platformsOf(items []commonModels.ContentItem) []string {
	seen := make(map[string]bool)
	platforms := []string{}
	for _, item := range items {
		if item.Platform == "" || seen[item.Platform] {
			continue
		}
		seen[item.Platform] = true
		platforms = append(platforms, item.Platform)
	}
	return platforms
}

func dateRangeOf(items []commonModels.ContentItem) *commonModels.DateRange {
	var start, end string
	for _, item := range items {
		if item.Date == "" {
			continue
		}
		if start == "" || item.Date < start {
			start = item.Date
		}
		if end == "" || item.Date > end {
			end = item.Date
		}
	}
	if start == "" {
		return nil
	}
	return &commonModels.DateRange{Start: start, End: end}
}
