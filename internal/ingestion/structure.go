package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/contentflow/ingestAPI/internal/config"
	"github.com/contentflow/ingestAPI/internal/domain/commonModels"
	"github.com/contentflow/ingestAPI/internal/ingestion/llm"
	"github.com/contentflow/ingestAPI/internal/metrics"
)

const structureSystemPrompt = `You are a document structure analyst. ` +
	`You respond with strict JSON only - no prose, no markdown fences. ` +
	`The JSON must have this exact shape: ` +
	`{"documentType": string, "structure": {"format": string, "hasHeaders": boolean, ` +
	`"columns": string[], "dataRows": number, "keyFields": string[], ` +
	`"delimiter": string, "encoding": string}, "insights": string[], "recommendations": string[]}`

// analyzeStructure is pass 1. It never fails: any completion or parse error
// is absorbed into the hard-coded default so pass 2 always has a structure
// context to work from.
func (s *service) analyzeStructure(ctx context.Context, docName string, text string) commonModels.StructureAnalysis {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("structure_analysis", time.Since(start)) }()

	callCtx, cancel := context.WithTimeout(ctx, config.StructureCallTimeout)
	defer cancel()

	raw, err := s.llm.Complete(callCtx, llm.Request{
		Model:           s.models.Structure,
		System:          structureSystemPrompt,
		Prompt:          buildStructurePrompt(docName, text),
		MaxOutputTokens: config.StructureMaxOutputTokens,
	})
	if err != nil {
		s.logger.Warn("structure analysis call failed, using default structure", "error", err)
		return commonModels.DefaultStructureAnalysis()
	}

	analysis, err := parseStructureResponse(raw)
	if err != nil {
		s.logger.Warn("structure analysis response unparseable, using default structure", "error", err)
		return commonModels.DefaultStructureAnalysis()
	}
	return analysis
}

func buildStructurePrompt(docName string, text string) string {
	prefix := text
	if len(prefix) > config.StructurePrefixLimit {
		prefix = prefix[:config.StructurePrefixLimit]
	}
	return fmt.Sprintf(
		"Analyze the structure of this document and describe its shape.\n\nDocument name: %s\n\nContent (first %d characters):\n%s",
		docName, config.StructurePrefixLimit, prefix)
}

func parseStructureResponse(raw string) (commonModels.StructureAnalysis, error) {
	var analysis commonModels.StructureAnalysis
	cleaned := stripCodeFences(raw)
	if err := json.Unmarshal([]byte(cleaned), &analysis); err != nil {
		return commonModels.StructureAnalysis{}, fmt.Errorf("structure response is not valid JSON: %w", err)
	}
	if analysis.Structure.Format == "" {
		return commonModels.StructureAnalysis{}, fmt.Errorf("structure response missing structure.format")
	}
	return analysis, nil
}
