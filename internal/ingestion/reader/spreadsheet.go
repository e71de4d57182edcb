package reader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/contentflow/ingestAPI/internal/domain/commonModels"
	"github.com/xuri/excelize/v2"
)

// extractSpreadsheet reads the first worksheet only and converts it into the
// same header-keyed row shape the csv reader produces.
func extractSpreadsheet(path string) (Extracted, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Extracted{}, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Extracted{}, errors.New("spreadsheet has no worksheets")
	}

	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return Extracted{}, fmt.Errorf("failed to read worksheet %q: %w", sheets[0], err)
	}
	if len(cells) == 0 {
		return Extracted{}, nil
	}

	headers := cells[0]
	var rows []commonModels.Row
	var text strings.Builder
	text.WriteString(strings.Join(headers, ","))
	text.WriteString("\n")

	for _, record := range cells[1:] {
		rows = append(rows, rowFromRecord(headers, record))
		text.WriteString(strings.Join(record, ","))
		text.WriteString("\n")
	}

	return Extracted{Text: text.String(), Rows: rows}, nil
}
