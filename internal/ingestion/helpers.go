package ingestion

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/contentflow/ingestAPI/internal/domain/commonModels"
	"github.com/contentflow/ingestAPI/internal/domain/jobModel"
	"github.com/contentflow/ingestAPI/internal/metrics"
	"github.com/contentflow/ingestAPI/pkg/logger_i"
)

func (s *service) jobError(job jobModel.Job, message string, canRetry bool) jobModel.Job {
	s.logger.Error(message, "jobId", job.Id)

	job.Error = jobModel.JobError{
		Code:    http.StatusInternalServerError,
		Message: message,
		Retry:   canRetry,
	}
	job.Status = jobModel.JobStatusError
	job.CurrentStep = jobModel.Error
	return job
}

func (s *service) loadSkipList(ctx context.Context, log *logger_i.Logger, job *jobModel.Job) []commonModels.SkipItem {
	job.CurrentStep = jobModel.ImportStoreCall
	skipItems, err := s.imports.GetImportedItems(ctx, job.DocumentKey)
	if err != nil {
		// a missing skip list only costs us duplicates, not the run
		log.Error("Failed to load previously imported items", "error", err)
		return nil
	}
	log.Debug("Loaded skip list", "count", len(skipItems))
	return skipItems
}

func (s *service) saveImportedItems(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, items []commonModels.ContentItem) {
	if len(items) == 0 {
		return
	}
	job.CurrentStep = jobModel.ImportStoreCall
	if err := s.imports.AppendImportedItems(ctx, job.DocumentKey, items); err != nil {
		log.Error("Failed to record imported items", "error", err)
	}
}

// filterAgainstSkipList is the deterministic backstop behind the prompt-based
// skip instruction: anything the model re-extracted anyway gets dropped here.
func (s *service) filterAgainstSkipList(result commonModels.IngestionResult, skipItems []commonModels.SkipItem) commonModels.IngestionResult {
	if len(skipItems) == 0 || len(result.ContentItems) == 0 {
		return result
	}

	known := make(map[string]bool, len(skipItems))
	for _, skip := range skipItems {
		known[skip.Key()] = true
	}

	kept := make([]commonModels.ContentItem, 0, len(result.ContentItems))
	dropped := 0
	for _, item := range result.ContentItems {
		key := commonModels.SkipItem{Title: item.Title, Date: item.Date}.Key()
		if known[key] {
			dropped++
			continue
		}
		kept = append(kept, item)
	}

	if dropped > 0 {
		s.logger.Debug("Dropped re-extracted duplicates", "count", dropped)
		metrics.CaptureDeduplicatedItems(dropped)
	}
	result.ContentItems = kept
	result.Summary.TotalItems = len(kept)
	return result
}

func nonBlankLines(text string, limit int) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lines = append(lines, trimmed)
		if len(lines) == limit {
			break
		}
	}
	return lines
}

func sectionTitle(n int) string {
	return fmt.Sprintf("Section %d", n)
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit]
}
