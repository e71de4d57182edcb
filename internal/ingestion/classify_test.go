package ingestion

import (
	"reflect"
	"testing"

	"github.com/contentflow/ingestAPI/internal/domain/commonModels"
)

func rowWith(columns ...string) commonModels.Row {
	row := commonModels.Row{}
	for _, col := range columns {
		row[col] = "x"
	}
	return row
}

func TestClassifyRows(t *testing.T) {
	tests := []struct {
		name     string
		rows     []commonModels.Row
		filename string
		want     commonModels.DocumentType
	}{
		{
			name:     "calendar columns",
			rows:     []commonModels.Row{rowWith("Date", "Format", "Caption (copy)", "Visual", "CTA")},
			filename: "upload.csv",
			want:     commonModels.DocContentCalendar,
		},
		{
			name:     "brief columns",
			rows:     []commonModels.Row{rowWith("Campaign", "Objective", "Notes")},
			filename: "upload.xlsx",
			want:     commonModels.DocCampaignBrief,
		},
		{
			name:     "brand columns",
			rows:     []commonModels.Row{rowWith("Tone of voice", "Primary color", "Notes")},
			filename: "upload.pdf",
			want:     commonModels.DocBrandGuidelines,
		},
		{
			name:     "ideas column",
			rows:     []commonModels.Row{rowWith("Idea", "Notes")},
			filename: "upload.csv",
			want:     commonModels.DocContentIdeas,
		},
		{
			name:     "filename wins over columns",
			rows:     []commonModels.Row{rowWith("Idea", "Notes")},
			filename: "q4_content_calendar.csv",
			want:     commonModels.DocContentCalendar,
		},
		{
			name:     "two calendar indicators are not enough",
			rows:     []commonModels.Row{rowWith("Date", "Format", "Amount")},
			filename: "export.csv",
			want:     commonModels.DocGeneral,
		},
		{
			name:     "no rows no filename hint",
			rows:     nil,
			filename: "data.txt",
			want:     commonModels.DocGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyRows(tt.rows, tt.filename)
			if got != tt.want {
				t.Errorf("ClassifyRows() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestMapRowsToItems_Calendar(t *testing.T) {
	rows := []commonModels.Row{
		{
			"Date":           "2026-09-01",
			"Format":         "Reel",
			"Caption (copy)": "Launch day!",
			"Platform":       "Instagram",
			"Hashtags":       "#launch, newdrop",
		},
		{
			"Date":   "2026-09-02",
			"Format": "Story",
		},
	}

	items := MapRowsToItems(commonModels.DocContentCalendar, rows)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	first := items[0]
	if first.Title != "Launch day!" || first.Format != "Reel" || first.Date != "2026-09-01" {
		t.Errorf("unexpected first item: %+v", first)
	}
	if !reflect.DeepEqual(first.Hashtags, []string{"#launch", "#newdrop"}) {
		t.Errorf("unexpected hashtags: %v", first.Hashtags)
	}

	// row with no caption falls back to a positional title
	if items[1].Title != "Item 2" {
		t.Errorf("expected positional title, got %q", items[1].Title)
	}
	if items[1].Hashtags == nil {
		t.Error("hashtags must never be nil")
	}
}

func TestFirstValue_CaseInsensitiveSubstring(t *testing.T) {
	row := commonModels.Row{"CAPTION TEXT": "  hello  ", "Visual": "photo"}
	if got := firstValue(row, "caption"); got != "hello" {
		t.Errorf("firstValue() = %q; want %q", got, "hello")
	}
	if got := firstValue(row, "cta"); got != "" {
		t.Errorf("firstValue() on missing column = %q; want empty", got)
	}
}
