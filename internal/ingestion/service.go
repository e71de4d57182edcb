package ingestion

import (
	"context"
	"os"
	"time"

	"github.com/contentflow/ingestAPI/internal/config"
	"github.com/contentflow/ingestAPI/internal/domain/commonModels"
	"github.com/contentflow/ingestAPI/internal/domain/jobModel"
	"github.com/contentflow/ingestAPI/internal/ingestion/llm"
	"github.com/contentflow/ingestAPI/internal/ingestion/reader"
	"github.com/contentflow/ingestAPI/internal/metrics"
	"github.com/contentflow/ingestAPI/pkg/logger_i"
)

// Service is the public contract the worker calls. It never knows whether a
// run went through the model pipeline or the rule-based path, and - outside
// of document read failures - it always comes back with a result.
type Service interface {
	IngestDocument(ctx context.Context, job jobModel.Job) jobModel.Job
}

// Models carries the provider-specific tier names for the two passes.
type Models struct {
	Structure  string
	Extraction string
}

type service struct {
	llm     llm.Provider
	imports jobModel.ImportStore
	models  Models
	locks   *documentLocks
	logger  *logger_i.Logger
	now     func() time.Time
}

// NewService constructor
func NewService(provider llm.Provider, imports jobModel.ImportStore, models Models) Service {
	return &service{
		llm:     provider,
		imports: imports,
		models:  models,
		locks:   newDocumentLocks(),
		logger:  logger_i.NewLogger("Ingestion Service :"),
		now:     time.Now,
	}
}

func (s *service) IngestDocument(ctx context.Context, job jobModel.Job) jobModel.Job {
	start := time.Now()
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "JobId", job.Id)

	// one run per document key at a time - a concurrent second run would
	// read a stale skip list and double-import
	release := s.locks.acquire(job.DocumentKey)
	defer release()

	docName := job.JobPayload.IngestFileName
	docPath := job.JobPayload.IngestURL
	inMethodLogger.Debug("Processing document", "filename", docName, "path", docPath)

	job.CurrentStep = jobModel.DocumentRead
	docType := reader.GetDocType(docPath)
	if docType == commonModels.ERR {
		return s.jobError(job, "UNSUPPORTED_FORMAT", false)
	}

	extracted, err := reader.Extract(docPath, docType)
	if err != nil {
		inMethodLogger.Error("Document read failed", "error", err)
		return s.jobError(job, "DOCUMENT_READ_FAILURE", true)
	}

	skipItems := s.loadSkipList(ctx, inMethodLogger, &job)

	var result commonModels.IngestionResult
	if job.JobPayload.ClassifierMode == "rule" {
		result = s.runRuleBased(inMethodLogger, &job, docName, extracted)
	} else {
		result = s.runModelPipeline(ctx, inMethodLogger, &job, docName, extracted, skipItems)
	}

	job.CurrentStep = jobModel.ResultAssembly
	result = s.filterAgainstSkipList(result, skipItems)

	s.saveImportedItems(ctx, inMethodLogger, &job, result.ContentItems)

	if err := os.Remove(docPath); err != nil {
		inMethodLogger.Error("Error removing temp file", "error", err)
	}

	metrics.CaptureIngestionOutcome(string(result.Outcome), len(result.ContentItems))
	metrics.CaptureExecutionMetrics("document_ingestion", time.Since(start))

	job.JobPayload.Result = &result
	job.CurrentStep = jobModel.Complete
	job.Status = jobModel.JobStatusComplete
	return job
}

// runModelPipeline is the two-pass path: structure analysis (never fails,
// falls back to the default structure) then streamed extraction (any failure
// becomes the degraded line-splitting fallback).
func (s *service) runModelPipeline(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, docName string, extracted reader.Extracted, skipItems []commonModels.SkipItem) commonModels.IngestionResult {
	job.CurrentStep = jobModel.StructurePass
	analysis := s.analyzeStructure(ctx, docName, extracted.Text)

	job.CurrentStep = jobModel.ExtractionPass
	result, err := s.extractContent(ctx, analysis, extracted.Text, skipItems)
	if err != nil {
		log.Warn("Extraction pass failed, degrading to line-split fallback", "error", err)
		job.CurrentStep = jobModel.DegradedFallback
		return s.degradedFallback(extracted.Text, err)
	}
	if result.DocumentType == "" {
		result.DocumentType = analysis.DocumentType
	}
	return result
}

func (s *service) runRuleBased(log *logger_i.Logger, job *jobModel.Job, docName string, extracted reader.Extracted) commonModels.IngestionResult {
	docType := ClassifyRows(extracted.Rows, docName)
	log.Debug("Rule-based classification", "documentType", docType)

	items := MapRowsToItems(docType, extracted.Rows)
	return assembleResult(extractionResponse{
		DocumentType: string(docType),
		ContentItems: items,
	})
}

// degradedFallback guarantees "always return something": the first few
// non-blank lines of the raw text become items so a full completion-service
// outage still yields a non-error run.
func (s *service) degradedFallback(text string, cause error) commonModels.IngestionResult {
	items := []commonModels.ContentItem{}
	today := s.now().Format("2006-01-02")

	for _, line := range nonBlankLines(text, config.FallbackSectionCount) {
		items = append(items, commonModels.ContentItem{
			Title:       sectionTitle(len(items) + 1),
			Description: truncate(line, config.FallbackDescriptionCap),
			Format:      config.FallbackItemFormat,
			Date:        today,
			Platform:    "",
			Type:        "section",
			Hashtags:    []string{},
		})
	}

	result := assembleResult(extractionResponse{
		DocumentType: string(commonModels.DocGeneral),
		ContentItems: items,
	})
	result.Outcome = commonModels.OutcomeDegraded
	result.DegradedReason = cause.Error()
	return result
}
