package ingestion

import (
	"fmt"
	"strings"

	"github.com/contentflow/ingestAPI/internal/domain/commonModels"
)

// Rule-based classification path. No model calls - a pure function from
// (rows, filename) to a document type, so it stays trivially testable and
// usable as the cheap alternative to the two-pass pipeline.

var calendarIndicators = []string{"date", "format", "caption", "visual", "cta"}
var briefIndicators = []string{"objective", "audience", "deliverable", "campaign", "budget"}
var ideasIndicators = []string{"idea", "concept", "hook", "angle"}
var brandIndicators = []string{"tone", "voice", "logo", "font", "color"}

func ClassifyRows(rows []commonModels.Row, filename string) commonModels.DocumentType {
	name := strings.ToLower(filename)
	switch {
	case strings.Contains(name, "calendar"):
		return commonModels.DocContentCalendar
	case strings.Contains(name, "brief"):
		return commonModels.DocCampaignBrief
	case strings.Contains(name, "brand"), strings.Contains(name, "guideline"):
		return commonModels.DocBrandGuidelines
	case strings.Contains(name, "idea"):
		return commonModels.DocContentIdeas
	}

	if len(rows) == 0 {
		return commonModels.DocGeneral
	}

	columns := columnNames(rows[0])
	if countIndicators(columns, calendarIndicators) >= 3 {
		return commonModels.DocContentCalendar
	}
	if countIndicators(columns, briefIndicators) >= 2 {
		return commonModels.DocCampaignBrief
	}
	if countIndicators(columns, brandIndicators) >= 2 {
		return commonModels.DocBrandGuidelines
	}
	if countIndicators(columns, ideasIndicators) >= 1 {
		return commonModels.DocContentIdeas
	}
	return commonModels.DocGeneral
}

func columnNames(row commonModels.Row) []string {
	names := make([]string, 0, len(row))
	for col := range row {
		names = append(names, strings.ToLower(col))
	}
	return names
}

func countIndicators(columns []string, indicators []string) int {
	count := 0
	for _, indicator := range indicators {
		for _, col := range columns {
			if strings.Contains(col, indicator) {
				count++
				break
			}
		}
	}
	return count
}

// MapRowsToItems applies the per-type field mapping. Each mapper is plain
// renaming/defaulting, one item per row, input order preserved.
func MapRowsToItems(docType commonModels.DocumentType, rows []commonModels.Row) []commonModels.ContentItem {
	items := make([]commonModels.ContentItem, 0, len(rows))
	for i, row := range rows {
		switch docType {
		case commonModels.DocContentCalendar:
			items = append(items, calendarRowToItem(row, i))
		case commonModels.DocCampaignBrief:
			items = append(items, briefRowToItem(row, i))
		case commonModels.DocContentIdeas:
			items = append(items, ideaRowToItem(row, i))
		default:
			items = append(items, generalRowToItem(row, i))
		}
	}
	return items
}

func calendarRowToItem(row commonModels.Row, index int) commonModels.ContentItem {
	caption := firstValue(row, "caption", "copy", "text")
	return commonModels.ContentItem{
		Title:       defaultTitle(caption, index),
		Description: caption,
		Format:      firstValue(row, "format", "type"),
		Date:        firstValue(row, "date"),
		Platform:    firstValue(row, "platform", "channel"),
		Type:        "post",
		Hashtags:    splitHashtags(firstValue(row, "hashtags", "tags")),
	}
}

func briefRowToItem(row commonModels.Row, index int) commonModels.ContentItem {
	objective := firstValue(row, "objective", "goal", "deliverable")
	return commonModels.ContentItem{
		Title:       defaultTitle(firstValue(row, "campaign", "name"), index),
		Description: objective,
		Format:      firstValue(row, "format", "deliverable"),
		Date:        firstValue(row, "date", "deadline", "due"),
		Platform:    firstValue(row, "platform", "channel"),
		Type:        "campaign",
		Hashtags:    []string{},
	}
}

func ideaRowToItem(row commonModels.Row, index int) commonModels.ContentItem {
	idea := firstValue(row, "idea", "concept", "hook", "title")
	return commonModels.ContentItem{
		Title:       defaultTitle(idea, index),
		Description: firstValue(row, "description", "notes", "angle"),
		Format:      firstValue(row, "format"),
		Date:        firstValue(row, "date"),
		Platform:    firstValue(row, "platform"),
		Type:        "idea",
		Hashtags:    splitHashtags(firstValue(row, "hashtags", "tags")),
	}
}

func generalRowToItem(row commonModels.Row, index int) commonModels.ContentItem {
	return commonModels.ContentItem{
		Title:       defaultTitle(firstValue(row, "title", "name", "section"), index),
		Description: firstValue(row, "description", "content", "notes"),
		Format:      firstValue(row, "format"),
		Date:        firstValue(row, "date"),
		Platform:    firstValue(row, "platform"),
		Type:        "note",
		Hashtags:    []string{},
	}
}

// firstValue does a case-insensitive substring lookup against the row's
// column names - agency sheets name the same column a dozen ways
// ("Caption (copy)", "CAPTION", "caption text").
func firstValue(row commonModels.Row, keys ...string) string {
	for _, key := range keys {
		for col, val := range row {
			if strings.Contains(strings.ToLower(col), key) && strings.TrimSpace(val) != "" {
				return strings.TrimSpace(val)
			}
		}
	}
	return ""
}

func defaultTitle(candidate string, index int) string {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return fmt.Sprintf("Item %d", index+1)
	}
	if len(candidate) > 80 {
		return candidate[:80]
	}
	return candidate
}

func splitHashtags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == ',' || r == ';'
	})
	tags := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if !strings.HasPrefix(f, "#") {
			f = "#" + f
		}
		tags = append(tags, f)
	}
	return tags
}
