package commonModels

import (
	"strings"
	"time"
)

type DocType string

var CSV DocType = "CSV"
var XLSX DocType = "XLSX"
var PDF DocType = "PDF"
var TXT DocType = "TXT"
var ERR DocType = "ERROR"

// DocumentType is the semantic label a classifier (rule or model based) puts
// on a document, as opposed to DocType which is the on-disk file format.
type DocumentType string

const (
	DocContentCalendar DocumentType = "content_calendar"
	DocCampaignBrief   DocumentType = "campaign_brief"
	DocBrandGuidelines DocumentType = "brand_guidelines"
	DocContentIdeas    DocumentType = "content_ideas"
	DocGeneral         DocumentType = "general"
)

// SourceDocument identifies one raw uploaded file. Immutable once read.
type SourceDocument struct {
	Id          string    `json:"source_doc_id"`
	Name        string    `json:"doc_name"`
	Path        string    `json:"doc_path"`
	ContentType DocType   `json:"content_type"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// Row is one parsed record of a tabular document, keyed by header values.
type Row map[string]string

// StructureAnalysis is the pass-1 output. It lives for exactly one ingestion
// run - produced once, consumed only by the pass-2 prompt, never persisted.
type StructureAnalysis struct {
	DocumentType    string        `json:"documentType"`
	Structure       StructureInfo `json:"structure"`
	Insights        []string      `json:"insights"`
	Recommendations []string      `json:"recommendations"`
}

type StructureInfo struct {
	Format     string   `json:"format"`
	HasHeaders bool     `json:"hasHeaders"`
	Columns    []string `json:"columns"`
	DataRows   int      `json:"dataRows"`
	KeyFields  []string `json:"keyFields"`
	Delimiter  string   `json:"delimiter"`
	Encoding   string   `json:"encoding"`
}

// DefaultStructureAnalysis is substituted whenever pass 1 returns something
// unparseable, so pass 2 never runs without a structure context.
func DefaultStructureAnalysis() StructureAnalysis {
	return StructureAnalysis{
		DocumentType: string(DocContentCalendar),
		Structure: StructureInfo{
			Format:     "CSV",
			HasHeaders: true,
			Columns:    []string{"Week", "Day", "Date", "Format", "Caption", "Visual", "CTA"},
			DataRows:   0,
			KeyFields:  []string{"Date", "Caption"},
			Delimiter:  ",",
			Encoding:   "utf-8",
		},
		Insights:        []string{},
		Recommendations: []string{},
	}
}

// ContentItem is the unit of pipeline output, ordered by appearance in the
// source document.
type ContentItem struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Format      string   `json:"format"`
	Date        string   `json:"date"` //YYYY-MM-DD
	Platform    string   `json:"platform"`
	Type        string   `json:"type"`
	Hashtags    []string `json:"hashtags"`
}

// SkipItem is a previously-imported item the model is told not to re-extract.
// The pipeline only ever reads these, it never creates them.
type SkipItem struct {
	Title string `json:"title"`
	Date  string `json:"date"`
}

// Key normalizes a skip entry for the deterministic post-extraction filter.
func (s SkipItem) Key() string {
	return strings.ToLower(strings.TrimSpace(s.Title)) + "|" + strings.TrimSpace(s.Date)
}

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type Summary struct {
	DocumentType string     `json:"documentType"`
	TotalItems   int        `json:"totalItems"`
	DateRange    *DateRange `json:"dateRange"`
	Platforms    []string   `json:"platforms"`
	Insights     []string   `json:"insights"`
}

type Outcome string

const (
	OutcomeSuccess  Outcome = "Success"
	OutcomeDegraded Outcome = "DegradedSuccess"
)

// IngestionResult is the aggregate return of one run. ContentItems is always
// a non-nil slice, even when every external call failed.
type IngestionResult struct {
	DocumentType   string        `json:"documentType"`
	Summary        Summary       `json:"summary"`
	ContentItems   []ContentItem `json:"contentItems"`
	Outcome        Outcome       `json:"outcome"`
	DegradedReason string        `json:"degradedReason,omitempty"`
}
