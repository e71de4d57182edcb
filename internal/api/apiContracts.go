package api

import "time"

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id          string            `json:"id" example:"job_cz109"`
	DocumentKey string            `json:"document_key" example:"q3-content-calendar.csv"`
	Result      Result            `json:"result"`
	Error       *JobOutgoingError `json:"error,omitempty"`
	StartTime   time.Time         `json:"start_time"`
	EndTime     time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type Result struct {
	Status    string             `json:"status"`
	Ingestion *IngestionResponse `json:"ingestion,omitempty"`
}

type IngestionResponse struct {
	DocumentType   string        `json:"document_type"`
	Outcome        string        `json:"outcome" example:"Success"`
	DegradedReason string        `json:"degraded_reason,omitempty"`
	TotalItems     int           `json:"total_items"`
	DateRange      *DateRange    `json:"date_range,omitempty"`
	Platforms      []string      `json:"platforms"`
	Insights       []string      `json:"insights"`
	ContentItems   []ContentItem `json:"content_items"`
}

type DateRange struct {
	Start string `json:"start" example:"2026-09-01"`
	End   string `json:"end" example:"2026-09-30"`
}

type ContentItem struct {
	Title       string   `json:"title" example:"Fall launch teaser"`
	Description string   `json:"description"`
	Format      string   `json:"format" example:"Reel"`
	Date        string   `json:"date" example:"2026-09-03"`
	Platform    string   `json:"platform" example:"Instagram"`
	Type        string   `json:"type" example:"post"`
	Hashtags    []string `json:"hashtags"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

// requests---------------------

type JobStatusRequest struct {
	JobId string `json:"job_id" validate:"required"`
}

type IngestDocumentRequest struct {
	DocumentName   string `json:"document_name" validate:"required"`
	ClassifierMode string `json:"classifier_mode,omitempty" example:"model"`
}
