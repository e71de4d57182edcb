package reader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/contentflow/ingestAPI/internal/domain/commonModels"
)

// ErrUnsupportedFormat fails a run before any extraction is attempted - it is
// the only reader error with no fallback path.
type ErrUnsupportedFormat struct {
	Extension string
}

func (e *ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported document format: %q", e.Extension)
}

// Extracted is the reader output. Text always holds the full extractable
// text; Rows is only populated for tabular formats (CSV, spreadsheets).
type Extracted struct {
	Text string
	Rows []commonModels.Row
}

func GetDocType(docPath string) commonModels.DocType {
	ext := strings.ToLower(filepath.Ext(docPath))
	switch ext {
	case ".csv":
		return commonModels.CSV
	case ".xlsx", ".xls":
		return commonModels.XLSX
	case ".pdf":
		return commonModels.PDF
	case ".txt", ".docx", ".rtf", ".odt":
		return commonModels.TXT
	default:
		return commonModels.ERR
	}
}

// Extract dispatches on the detected file format.
func Extract(docPath string, contentType commonModels.DocType) (Extracted, error) {
	switch contentType {
	case commonModels.CSV:
		return extractCSV(docPath)
	case commonModels.XLSX:
		return extractSpreadsheet(docPath)
	case commonModels.PDF:
		return extractPDF(docPath)
	case commonModels.TXT:
		return extractPlainText(docPath)
	default:
		return Extracted{}, &ErrUnsupportedFormat{Extension: strings.ToLower(filepath.Ext(docPath))}
	}
}
