package adapter

import (
	"fmt"
	"time"

	"github.com/contentflow/ingestAPI/internal/api"
	"github.com/contentflow/ingestAPI/internal/domain/commonModels"
	"github.com/contentflow/ingestAPI/internal/domain/jobModel"
)

func ToInitJobResponse(id string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("status/%s", id),
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {

	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	result := api.Result{
		Status:    string(job.Status),
		Ingestion: toIngestionResponse(job.JobPayload.Result),
	}

	return api.JobResponse{
		Id:          job.Id,
		DocumentKey: job.DocumentKey,
		StartTime:   job.CreatedTime,
		EndTime:     job.EndTime,
		Error:       errorPtr,
		Result:      result,
	}
}

func toIngestionResponse(result *commonModels.IngestionResult) *api.IngestionResponse {
	if result == nil {
		return nil
	}

	items := make([]api.ContentItem, 0, len(result.ContentItems))
	for _, item := range result.ContentItems {
		items = append(items, api.ContentItem{
			Title:       item.Title,
			Description: item.Description,
			Format:      item.Format,
			Date:        item.Date,
			Platform:    item.Platform,
			Type:        item.Type,
			Hashtags:    item.Hashtags,
		})
	}

	var dateRange *api.DateRange
	if result.Summary.DateRange != nil {
		dateRange = &api.DateRange{
			Start: result.Summary.DateRange.Start,
			End:   result.Summary.DateRange.End,
		}
	}

	return &api.IngestionResponse{
		DocumentType:   result.DocumentType,
		Outcome:        string(result.Outcome),
		DegradedReason: result.DegradedReason,
		TotalItems:     result.Summary.TotalItems,
		DateRange:      dateRange,
		Platforms:      result.Summary.Platforms,
		Insights:       result.Summary.Insights,
		ContentItems:   items,
	}
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return api.JobResponse{
		Id:          id,
		DocumentKey: "",
		StartTime:   time.Time{},
		EndTime:     time.Time{},
		Result: api.Result{
			Status: string(api.JobStatusError),
		},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
