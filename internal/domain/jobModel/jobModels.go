package jobModel

import (
	"context"
	"time"

	"github.com/contentflow/ingestAPI/internal/domain/commonModels"
)

type JobStatus string
type InternalStatus string

type JobType string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	IngestInit       InternalStatus = "IngestInit"
	DocumentRead     InternalStatus = "DocumentRead"
	StructurePass    InternalStatus = "StructureAnalysis"
	ExtractionPass   InternalStatus = "Extraction"
	DegradedFallback InternalStatus = "DegradedFallback"
	ResultAssembly   InternalStatus = "ResultAssembly"
	ImportStoreCall  InternalStatus = "ImportStore"
	Error            InternalStatus = "Error"

	Complete InternalStatus = "Complete"

	JobTypeIngest JobType = "Ingest"
)

type Job struct {
	Id          string         `json:"id"`
	DocumentKey string         `json:"document_key"`
	TraceId     string         `json:"trace_id"`
	JobType     JobType        `json:"job_type"`
	JobPayload  JobPayload     `json:"job_payload"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

type JobPayload struct {
	IngestFileName string `json:"ingest_file_name,omitempty"`
	IngestURL      string `json:"ingest_url,omitempty"`

	//"rule" skips the model entirely, "model" runs the two-pass pipeline
	ClassifierMode string `json:"classifier_mode,omitempty"`

	Result *commonModels.IngestionResult `json:"result,omitempty"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}

// ImportStore tracks which (title, date) pairs were already extracted for a
// document key across runs. Read before a run for the skip list, appended
// after a successful run.
type ImportStore interface {
	GetImportedItems(ctx context.Context, documentKey string) ([]commonModels.SkipItem, error)
	AppendImportedItems(ctx context.Context, documentKey string, items []commonModels.ContentItem) error
}
